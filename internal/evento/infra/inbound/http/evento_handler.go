package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/asistencia-cultural/internal/evento/application"
	"github.com/davicafu/asistencia-cultural/internal/evento/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
)

// EventoHandler encapsula los endpoints HTTP de eventos y su asistencia
type EventoHandler struct {
	service *application.EventoService
}

func NewEventoHandler(service *application.EventoService) *EventoHandler {
	return &EventoHandler{service: service}
}

// ---------------- Handlers ----------------

// CrearEvento endpoint POST /eventos
func (h *EventoHandler) CrearEvento(c *gin.Context) {
	var req struct {
		Nombre           string    `json:"nombre" binding:"required"`
		Hora             string    `json:"hora"`
		Lugar            string    `json:"lugar"`
		FechaApertura    time.Time `json:"fecha_apertura" binding:"required"`
		FechaVencimiento time.Time `json:"fecha_vencimiento" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evento, err := h.service.CrearEvento(c.Request.Context(), &domain.Evento{
		Nombre:           req.Nombre,
		Hora:             req.Hora,
		Lugar:            req.Lugar,
		FechaApertura:    req.FechaApertura,
		FechaVencimiento: req.FechaVencimiento,
		Activo:           true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventoInvalido) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, evento)
}

// ListarEventos endpoint GET /eventos
func (h *EventoHandler) ListarEventos(c *gin.Context) {
	eventos, err := h.service.ListarEventos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, eventos)
}

// EventosActivos endpoint GET /eventos/activos
func (h *EventoHandler) EventosActivos(c *gin.Context) {
	eventos, err := h.service.EventosActivos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, eventos)
}

// AlternarActivo endpoint PUT /eventos/:id/activo
func (h *EventoHandler) AlternarActivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento inválido"})
		return
	}

	activo, err := h.service.AlternarActivo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventoNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activo": activo})
}

// EliminarEvento endpoint DELETE /eventos/:id
func (h *EventoHandler) EliminarEvento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento inválido"})
		return
	}

	if err := h.service.EliminarEvento(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEventoNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegistrarAsistencia endpoint POST /eventos/:id/asistencias
func (h *EventoHandler) RegistrarAsistencia(c *gin.Context) {
	eventoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento inválido"})
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
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

	entrada, err := h.service.RegistrarAsistencia(c.Request.Context(), userID, eventoID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventoNoEncontrado):
			c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		case errors.Is(err, usuarioDomain.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, entrada)
}

// ObtenerRegistros endpoint GET /eventos/asistencias
func (h *EventoHandler) ObtenerRegistros(c *gin.Context) {
	registros, err := h.service.ObtenerRegistros(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, registros)
}

// Estadisticas endpoint GET /eventos/estadisticas
func (h *EventoHandler) Estadisticas(c *gin.Context) {
	stats, err := h.service.Estadisticas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
