package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/asistencia-cultural/internal/admin/application"
	"github.com/davicafu/asistencia-cultural/internal/admin/domain"
)

// La autorización se resuelve por petición a partir de cabeceras: no hay
// sesión ambiente almacenada en el servidor. Cada request llega con sus
// credenciales y el middleware deja una Sesion en el contexto de gin.
const (
	HeaderAdminUsuario  = "X-Admin-Usuario"
	HeaderAdminPassword = "X-Admin-Password"
	HeaderDocumento     = "X-Auth-Documento"
	HeaderCorreo        = "X-Auth-Correo"

	claveSesion = "sesion"
)

// SesionDe recupera la Sesion que dejó el middleware en el contexto.
func SesionDe(c *gin.Context) (domain.Sesion, bool) {
	v, ok := c.Get(claveSesion)
	if !ok {
		return domain.Sesion{}, false
	}
	sesion, ok := v.(domain.Sesion)
	return sesion, ok
}

// RequiereSuperAdmin exige las credenciales fijas del super administrador.
func RequiereSuperAdmin(service *application.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := c.GetHeader(HeaderAdminUsuario)
		password := c.GetHeader(HeaderAdminPassword)

		if !service.VerificarSuperAdmin(usuario, password) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "credenciales de super administrador inválidas"})
			return
		}

		c.Next()
	}
}

// RequiereAdmin acepta al super administrador o a un administrador
// registrado por el par (documento, correo).
func RequiereAdmin(service *application.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if service.VerificarSuperAdmin(c.GetHeader(HeaderAdminUsuario), c.GetHeader(HeaderAdminPassword)) {
			c.Next()
			return
		}

		documento := c.GetHeader(HeaderDocumento)
		correo := c.GetHeader(HeaderCorreo)
		if documento == "" || correo == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "faltan credenciales de administrador"})
			return
		}

		if _, err := service.VerificarAdmin(c.Request.Context(), documento, correo); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "administrador no reconocido"})
			return
		}

		c.Next()
	}
}

// RequiereEncargado resuelve la Sesion de un encargado de grupo (director o
// monitor con asignación activa) y la deja en el contexto de la petición.
func RequiereEncargado(service *application.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		documento := c.GetHeader(HeaderDocumento)
		correo := c.GetHeader(HeaderCorreo)
		if documento == "" || correo == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "faltan credenciales de encargado"})
			return
		}

		perfil, grupo, err := service.VerificarEncargado(c.Request.Context(), documento, correo)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "encargado no reconocido"})
			return
		}

		c.Set(claveSesion, domain.Sesion{
			Rol:    perfil.Rol,
			UserID: perfil.ID,
			Grupo:  grupo,
		})

		c.Next()
	}
}
