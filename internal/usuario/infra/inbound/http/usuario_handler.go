package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/asistencia-cultural/internal/usuario/application"
	"github.com/davicafu/asistencia-cultural/internal/usuario/domain"
)

// UsuarioHandler encapsula los endpoints HTTP relacionados con PerfilUsuario
type UsuarioHandler struct {
	service *application.UsuarioService
}

func NewUsuarioHandler(service *application.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

// ---------------- Handlers ----------------

// RegistrarUsuario endpoint POST /usuarios
func (h *UsuarioHandler) RegistrarUsuario(c *gin.Context) {
	var req struct {
		Nombres           string `json:"nombres" binding:"required"`
		Correo            string `json:"correo" binding:"required,email"`
		TipoDocumento     string `json:"tipo_documento" binding:"required"`
		NumeroDocumento   string `json:"numero_documento" binding:"required"`
		Telefono          string `json:"telefono" binding:"required"`
		Edad              int    `json:"edad" binding:"required"`
		Genero            string `json:"genero" binding:"required"`
		Etnia             string `json:"etnia"`
		Sede              string `json:"sede" binding:"required"`
		Estamento         string `json:"estamento" binding:"required"`
		CodigoEstudiante  string `json:"codigo_estudiante"`
		Facultad          string `json:"facultad"`
		ProgramaAcademico string `json:"programa_academico"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	perfil := &domain.PerfilUsuario{
		Nombres:           req.Nombres,
		Correo:            req.Correo,
		TipoDocumento:     req.TipoDocumento,
		NumeroDocumento:   req.NumeroDocumento,
		Telefono:          req.Telefono,
		Edad:              req.Edad,
		Genero:            domain.Genero(req.Genero),
		Etnia:             req.Etnia,
		Sede:              req.Sede,
		Estamento:         domain.Estamento(req.Estamento),
		CodigoEstudiante:  req.CodigoEstudiante,
		Facultad:          req.Facultad,
		ProgramaAcademico: req.ProgramaAcademico,
	}

	creado, err := h.service.RegistrarUsuario(c.Request.Context(), perfil)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPerfilInvalido):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUsuarioYaExiste):
			c.JSON(http.StatusConflict, gin.H{"error": "el usuario ya existe"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, creado)
}

// BuscarSimilares endpoint POST /usuarios/similares
func (h *UsuarioHandler) BuscarSimilares(c *gin.Context) {
	var req struct {
		Nombres         string `json:"nombres"`
		Correo          string `json:"correo"`
		NumeroDocumento string `json:"numero_documento"`
		Telefono        string `json:"telefono"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	similares, err := h.service.BuscarSimilares(c.Request.Context(), domain.ConsultaSimilitud{
		Nombres:         req.Nombres,
		Correo:          req.Correo,
		NumeroDocumento: req.NumeroDocumento,
		Telefono:        req.Telefono,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"similares": similares})
}

// ObtenerUsuario endpoint GET /usuarios/:id
func (h *UsuarioHandler) ObtenerUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return
	}

	perfil, err := h.service.ObtenerUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, perfil)
}

// ListarUsuarios endpoint GET /usuarios
func (h *UsuarioHandler) ListarUsuarios(c *gin.Context) {
	perfiles, err := h.service.ListarUsuarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, perfiles)
}

// ActualizarRol endpoint PUT /usuarios/:id/rol
func (h *UsuarioHandler) ActualizarRol(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return
	}

	var req struct {
		Rol string `json:"rol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ActualizarRol(c.Request.Context(), id, domain.Rol(req.Rol)); err != nil {
		if errors.Is(err, domain.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// EliminarUsuario endpoint DELETE /usuarios/:id
func (h *UsuarioHandler) EliminarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return
	}

	if err := h.service.EliminarUsuario(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
