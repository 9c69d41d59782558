package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"palabra-api/internal/domain"
	"palabra-api/internal/repository"
	"palabra-api/internal/service"
)

type mockPalabraRepo struct {
	items  map[int64]domain.Palabra
	nextID int64
}

func newMockPalabraRepo() *mockPalabraRepo {
	return &mockPalabraRepo{items: make(map[int64]domain.Palabra)}
}

func (m *mockPalabraRepo) GetByID(_ context.Context, id int64) (domain.Palabra, error) {
	p, ok := m.items[id]
	if !ok {
		return domain.Palabra{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockPalabraRepo) GetByPalabra(_ context.Context, palabra string) (domain.Palabra, error) {
	for _, p := range m.items {
		if p.Palabra == palabra {
			return p, nil
		}
	}
	return domain.Palabra{}, pgx.ErrNoRows
}

func (m *mockPalabraRepo) List(_ context.Context) ([]domain.Palabra, error) {
	items := make([]domain.Palabra, 0, len(m.items))
	for _, p := range m.items {
		items = append(items, p)
	}
	return items, nil
}

func (m *mockPalabraRepo) Create(_ context.Context, input repository.CreatePalabraInput) (domain.Palabra, error) {
	m.nextID++
	p := domain.Palabra{
		ID:          m.nextID,
		Palabra:     input.Palabra,
		Nombre:      input.Nombre,
		CodigoISO:   input.CodigoISO,
		Region:      input.Region,
		Descripcion: input.Descripcion,
		CreatedAt:   time.Now().UTC(),
	}
	m.items[p.ID] = p
	return p, nil
}

func (m *mockPalabraRepo) Update(_ context.Context, id int64, input repository.UpdatePalabraInput) (domain.Palabra, error) {
	p, ok := m.items[id]
	if !ok {
		return domain.Palabra{}, pgx.ErrNoRows
	}
	if input.Nombre != nil {
		p.Nombre = *input.Nombre
	}
	if input.CodigoISO != nil {
		p.CodigoISO = *input.CodigoISO
	}
	if input.Region != nil {
		p.Region = *input.Region
	}
	if input.Descripcion != nil {
		p.Descripcion = *input.Descripcion
	}
	m.items[id] = p
	return p, nil
}

func (m *mockPalabraRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func newPalabraTestRouter(repo repository.PalabraRepository) (*gin.Engine, *service.JWTService) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	jwtSvc := service.NewJWTService("secret", 0)
	palabraH := NewPalabraHandler(logger, repo)

	r := gin.New()
	palabras := r.Group("/palabras")
	palabras.GET("", palabraH.List)
	palabras.GET("/:id", palabraH.Get)
	protegidas := palabras.Group("", JWTAuthMiddleware(jwtSvc))
	protegidas.POST("", palabraH.Create)
	protegidas.PUT("/:id", palabraH.Update)
	protegidas.DELETE("/:id", palabraH.Delete)
	return r, jwtSvc
}

func TestPalabraCreate_RequiresToken(t *testing.T) {
	r, _ := newPalabraTestRouter(newMockPalabraRepo())

	rec := doJSON(t, r, http.MethodPost, "/palabras", gin.H{
		"palabra": "hola", "nombre": "Español", "codigo_iso": "es",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestPalabraCreate_WithToken(t *testing.T) {
	repo := newMockPalabraRepo()
	r, jwtSvc := newPalabraTestRouter(repo)

	token, err := jwtSvc.Issue(domain.User{ID: 1, Username: "ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := doJSONAuth(t, r, http.MethodPost, "/palabras", token, gin.H{
		"palabra": "hola", "nombre": "Español", "codigo_iso": "es", "region": "MX",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected stored palabra")
	}
}

func TestPalabraList_Public(t *testing.T) {
	repo := newMockPalabraRepo()
	if _, err := repo.Create(context.Background(), repository.CreatePalabraInput{
		Palabra: "hola", Nombre: "Español", CodigoISO: "es",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r, _ := newPalabraTestRouter(repo)

	rec := doJSON(t, r, http.MethodGet, "/palabras", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPalabraGet_NotFound(t *testing.T) {
	r, _ := newPalabraTestRouter(newMockPalabraRepo())

	rec := doJSON(t, r, http.MethodGet, "/palabras/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPalabraDelete_NotFound(t *testing.T) {
	r, jwtSvc := newPalabraTestRouter(newMockPalabraRepo())

	token, err := jwtSvc.Issue(domain.User{ID: 1, Username: "ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := doJSONAuth(t, r, http.MethodDelete, "/palabras/99", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
