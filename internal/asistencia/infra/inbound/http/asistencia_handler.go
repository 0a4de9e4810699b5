package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/asistencia-cultural/internal/asistencia/application"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
)

// AsistenciaHandler encapsula los endpoints HTTP de la bitácora de asistencia
type AsistenciaHandler struct {
	service *application.AsistenciaService
}

func NewAsistenciaHandler(service *application.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{service: service}
}

// ---------------- Handlers ----------------

// RegistrarAsistencia endpoint POST /asistencias
func (h *AsistenciaHandler) RegistrarAsistencia(c *gin.Context) {
	var req struct {
		UserID        string `json:"user_id" binding:"required"`
		GrupoCultural string `json:"grupo_cultural" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id inválido"})
		return
	}

	entrada, err := h.service.RegistrarAsistencia(c.Request.Context(), userID, req.GrupoCultural)
	if err != nil {
		if errors.Is(err, usuarioDomain.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entrada)
}

// ObtenerRegistros endpoint GET /asistencias
func (h *AsistenciaHandler) ObtenerRegistros(c *gin.Context) {
	registros, err := h.service.ObtenerRegistros(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, registros)
}

// Estadisticas endpoint GET /asistencias/estadisticas
func (h *AsistenciaHandler) Estadisticas(c *gin.Context) {
	stats, err := h.service.Estadisticas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Seguimiento endpoint GET /asistencias/seguimiento
func (h *AsistenciaHandler) Seguimiento(c *gin.Context) {
	seguimiento, err := h.service.Seguimiento(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, seguimiento)
}

// ExportarAnaliticas endpoint POST /asistencias/exportar
func (h *AsistenciaHandler) ExportarAnaliticas(c *gin.Context) {
	exportados, err := h.service.ExportarAnaliticas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exportados": exportados})
}
