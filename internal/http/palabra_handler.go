package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"palabra-api/internal/repository"
)

// PalabraHandler mantiene dependencias para el catálogo de vocabulario.
type PalabraHandler struct {
	logger   *zap.Logger
	palabras repository.PalabraRepository
}

func NewPalabraHandler(logger *zap.Logger, palabras repository.PalabraRepository) *PalabraHandler {
	return &PalabraHandler{
		logger:   logger,
		palabras: palabras,
	}
}

// List maneja GET /palabras.
func (h *PalabraHandler) List(c *gin.Context) {
	items, err := h.palabras.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list palabras failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "palabras": items})
}

// Get maneja GET /palabras/:id.
func (h *PalabraHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.palabras.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Palabra no encontrada"})
			return
		}
		h.logger.Error("get palabra failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "palabra": p})
}

// Create maneja POST /palabras.
func (h *PalabraHandler) Create(c *gin.Context) {
	var req struct {
		Palabra     string `json:"palabra" binding:"required"`
		Nombre      string `json:"nombre" binding:"required"`
		CodigoISO   string `json:"codigo_iso" binding:"required"`
		Region      string `json:"region"`
		Descripcion string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create palabra request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Palabra, nombre y codigo_iso son requeridos"})
		return
	}

	p, err := h.palabras.Create(c.Request.Context(), repository.CreatePalabraInput{
		Palabra:     req.Palabra,
		Nombre:      req.Nombre,
		CodigoISO:   req.CodigoISO,
		Region:      req.Region,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "La palabra ya existe"})
			return
		}
		h.logger.Error("create palabra failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "palabra": p})
}

// Update maneja PUT /palabras/:id.
func (h *PalabraHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Nombre      *string `json:"nombre"`
		CodigoISO   *string `json:"codigo_iso"`
		Region      *string `json:"region"`
		Descripcion *string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update palabra request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cuerpo inválido"})
		return
	}

	p, err := h.palabras.Update(c.Request.Context(), id, repository.UpdatePalabraInput{
		Nombre:      req.Nombre,
		CodigoISO:   req.CodigoISO,
		Region:      req.Region,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Palabra no encontrada"})
			return
		}
		h.logger.Error("update palabra failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "palabra": p})
}

// Delete maneja DELETE /palabras/:id.
func (h *PalabraHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	removed, err := h.palabras.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete palabra failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error interno del servidor"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Palabra no encontrada"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido"})
		return 0, false
	}
	return id, true
}
