package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/asistencia-cultural/internal/inscripcion/application"
	"github.com/davicafu/asistencia-cultural/internal/inscripcion/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
)

// InscripcionHandler encapsula los endpoints HTTP de inscripciones a grupos
type InscripcionHandler struct {
	service *application.InscripcionService
}

func NewInscripcionHandler(service *application.InscripcionService) *InscripcionHandler {
	return &InscripcionHandler{service: service}
}

// ---------------- Handlers ----------------

// InscribirUsuario endpoint POST /inscripciones
func (h *InscripcionHandler) InscribirUsuario(c *gin.Context) {
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

	inscripcion, err := h.service.InscribirUsuario(c.Request.Context(), userID, req.GrupoCultural)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrYaInscrito):
			c.JSON(http.StatusConflict, gin.H{"error": "el usuario ya está inscrito en el grupo"})
		case errors.Is(err, usuarioDomain.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, inscripcion)
}

// InscripcionesDeUsuario endpoint GET /inscripciones/usuario/:id
func (h *InscripcionHandler) InscripcionesDeUsuario(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return
	}

	inscripciones, err := h.service.InscripcionesDeUsuario(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inscripciones)
}

// GruposConInscritos endpoint GET /inscripciones/grupos
func (h *InscripcionHandler) GruposConInscritos(c *gin.Context) {
	grupos, err := h.service.GruposConInscritos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, grupos)
}

// UsuariosInscritos endpoint GET /inscripciones/grupos/:grupo
func (h *InscripcionHandler) UsuariosInscritos(c *gin.Context) {
	grupo := c.Param("grupo")
	if grupo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grupo cultural vacío"})
		return
	}

	usuarios, err := h.service.UsuariosInscritos(c.Request.Context(), grupo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, usuarios)
}

// RetirarUsuario endpoint DELETE /inscripciones
func (h *InscripcionHandler) RetirarUsuario(c *gin.Context) {
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

	if err := h.service.RetirarUsuario(c.Request.Context(), userID, req.GrupoCultural); err != nil {
		if errors.Is(err, domain.ErrInscripcionNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inscripción no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
