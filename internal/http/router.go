package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"palabra-api/internal/service"
)

const requestIDKey = "request_id"

// GuardConfig define los prefijos de páginas protegidas y la URL de
// login a la que se redirige sin sesión válida.
type GuardConfig struct {
	Prefixes []string
	LoginURL string
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	guard GuardConfig,
	authH *AuthHandler,
	userH *UserHandler,
	palabraH *PalabraHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	// El guard corre delante de toda petición a prefijos protegidos.
	r.Use(RouteGuard(jwtSvc, guard.Prefixes, guard.LoginURL))

	auth := r.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/register", authH.Register)

	users := r.Group("/users", JWTAuthMiddleware(jwtSvc))
	users.GET("/me", userH.Me)

	palabras := r.Group("/palabras")
	palabras.GET("", palabraH.List)
	palabras.GET("/:id", palabraH.Get)

	protegidas := palabras.Group("", JWTAuthMiddleware(jwtSvc))
	protegidas.POST("", palabraH.Create)
	protegidas.PUT("/:id", palabraH.Update)
	protegidas.DELETE("/:id", palabraH.Delete)

	return r
}

// requestIDMiddleware etiqueta cada request con un id propagado en la
// respuesta.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
