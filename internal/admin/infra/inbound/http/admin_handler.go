package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/asistencia-cultural/internal/admin/application"
	"github.com/davicafu/asistencia-cultural/internal/admin/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
)

// AdminHandler encapsula los endpoints HTTP de administración
type AdminHandler struct {
	service *application.AdminService
}

func NewAdminHandler(service *application.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ---------------- Autenticación ----------------

// Login endpoint POST /admin/login. Verifica credenciales sin crear estado
// en el servidor: el cliente repite las cabeceras en cada petición.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Usuario   string `json:"usuario"`
		Password  string `json:"password"`
		Documento string `json:"documento"`
		Correo    string `json:"correo"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Usuario != "" {
		if h.service.VerificarSuperAdmin(req.Usuario, req.Password) {
			c.JSON(http.StatusOK, gin.H{"tipo": "superadmin"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales inválidas"})
		return
	}

	admin, err := h.service.VerificarAdmin(c.Request.Context(), req.Documento, req.Correo)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNoEncontrado) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales inválidas"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tipo": "admin", "admin": admin})
}

// LoginEncargado endpoint POST /admin/encargados/login
func (h *AdminHandler) LoginEncargado(c *gin.Context) {
	var req struct {
		Documento string `json:"documento" binding:"required"`
		Correo    string `json:"correo" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	perfil, grupo, err := h.service.VerificarEncargado(c.Request.Context(), req.Documento, req.Correo)
	if err != nil {
		switch {
		case errors.Is(err, usuarioDomain.ErrUsuarioNoEncontrado),
			errors.Is(err, domain.ErrEncargadoNoEncontrado),
			errors.Is(err, domain.ErrRolInsuficiente):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales inválidas"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, domain.Sesion{Rol: perfil.Rol, UserID: perfil.ID, Grupo: grupo})
}

// ---------------- Administradores ----------------

// CrearAdmin endpoint POST /admin/admins
func (h *AdminHandler) CrearAdmin(c *gin.Context) {
	var req struct {
		Documento string `json:"documento" binding:"required"`
		Correo    string `json:"correo" binding:"required,email"`
		Nombres   string `json:"nombres" binding:"required"`
		CreadoPor string `json:"creado_por" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.service.CrearAdmin(c.Request.Context(), req.Documento, req.Correo, req.Nombres, req.CreadoPor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// ListarAdmins endpoint GET /admin/admins
func (h *AdminHandler) ListarAdmins(c *gin.Context) {
	admins, err := h.service.ListarAdmins(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admins)
}

// ---------------- Encargados de grupo ----------------

// AsignarEncargado endpoint POST /admin/encargados
func (h *AdminHandler) AsignarEncargado(c *gin.Context) {
	var req struct {
		UserID        string `json:"user_id" binding:"required"`
		GrupoCultural string `json:"grupo_cultural" binding:"required"`
		AsignadoPor   string `json:"asignado_por" binding:"required"`
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

	encargado, err := h.service.AsignarEncargado(c.Request.Context(), userID, req.GrupoCultural, req.AsignadoPor)
	if err != nil {
		switch {
		case errors.Is(err, usuarioDomain.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		case errors.Is(err, domain.ErrRolInsuficiente):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrEncargadoDuplicado):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, encargado)
}

// EncargadosDeGrupo endpoint GET /admin/encargados/:grupo
func (h *AdminHandler) EncargadosDeGrupo(c *gin.Context) {
	encargados, err := h.service.EncargadosDeGrupo(c.Request.Context(), c.Param("grupo"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, encargados)
}

// RemoverEncargado endpoint DELETE /admin/encargados/:id
func (h *AdminHandler) RemoverEncargado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de encargado inválido"})
		return
	}

	if err := h.service.RemoverEncargado(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEncargadoNoEncontrado) {
			c.JSON(http.StatusNotFound, gin.H{"error": "encargado no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ---------------- Categorías de grupo ----------------

// AsignarCategoria endpoint PUT /admin/categorias
func (h *AdminHandler) AsignarCategoria(c *gin.Context) {
	var req struct {
		UserIDs       []string `json:"user_ids" binding:"required"`
		GrupoCultural string   `json:"grupo_cultural" binding:"required"`
		Categoria     string   `json:"categoria" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id inválido: " + raw})
			return
		}
		userIDs = append(userIDs, id)
	}

	err := h.service.AsignarCategoria(c.Request.Context(), userIDs, req.GrupoCultural, domain.CategoriaGrupo(req.Categoria))
	if err != nil {
		if errors.Is(err, domain.ErrCategoriaInvalida) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// UsuariosPorCategoria endpoint GET /admin/categorias/:grupo/:categoria
func (h *AdminHandler) UsuariosPorCategoria(c *gin.Context) {
	categoria := domain.CategoriaGrupo(c.Param("categoria"))
	if !categoria.EsValida() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoría de grupo desconocida"})
		return
	}

	asignaciones, err := h.service.UsuariosPorCategoria(c.Request.Context(), c.Param("grupo"), categoria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asignaciones)
}

// CategoriaDeUsuario endpoint GET /admin/categorias/:grupo/usuario/:id
func (h *AdminHandler) CategoriaDeUsuario(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return
	}

	categoria, err := h.service.CategoriaDeUsuario(c.Request.Context(), userID, c.Param("grupo"))
	if err != nil {
		if errors.Is(err, domain.ErrSinCategoria) {
			c.JSON(http.StatusNotFound, gin.H{"error": "el usuario no tiene categoría en el grupo"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categoria": categoria})
}

// RemoverDeCategorias endpoint DELETE /admin/categorias/:grupo/usuario/:id
func (h *AdminHandler) RemoverDeCategorias(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return
	}

	if err := h.service.RemoverDeCategorias(c.Request.Context(), userID, c.Param("grupo")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
