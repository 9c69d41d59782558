package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"palabra-api/internal/service"
)

const authClaimsKey = "auth_claims"

// RouteGuard protege prefijos de páginas: sin token válido redirige a
// la pantalla de login. La cookie "token" tiene precedencia sobre el
// header Authorization. Cualquier fallo de verificación se trata igual.
func RouteGuard(jwtSvc *service.JWTService, prefixes []string, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		protected := false
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				protected = true
				break
			}
		}
		if !protected {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.Redirect(http.StatusFound, loginURL)
			c.Abort()
			return
		}
		if _, err := jwtSvc.Verify(token); err != nil {
			c.Redirect(http.StatusFound, loginURL)
			c.Abort()
			return
		}
		c.Next()
	}
}

// JWTAuthMiddleware valida tokens de sesión en rutas de API y guarda
// los claims en el contexto. A diferencia del RouteGuard responde con
// JSON 401 en lugar de redirigir.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
			c.Abort()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No autorizado"})
			c.Abort()
			return
		}

		claims, err := jwtSvc.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No autorizado"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene los claims del token desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}
