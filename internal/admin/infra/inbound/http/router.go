package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/asistencia-cultural/internal/admin/application"
)

func RegisterAdminRoutes(r *gin.Engine, handler *AdminHandler, service *application.AdminService) {
	admin := r.Group("/admin")
	{
		admin.POST("/login", handler.Login)
		admin.POST("/encargados/login", handler.LoginEncargado)

		// Solo el super administrador gestiona administradores.
		admins := admin.Group("/admins", RequiereSuperAdmin(service))
		{
			admins.POST("/", handler.CrearAdmin)
			admins.GET("/", handler.ListarAdmins)
		}

		// Administradores (o el super administrador) gestionan encargados
		// y categorías.
		encargados := admin.Group("/encargados", RequiereAdmin(service))
		{
			encargados.POST("/", handler.AsignarEncargado)
			encargados.GET("/:grupo", handler.EncargadosDeGrupo)
			encargados.DELETE("/:id", handler.RemoverEncargado)
		}

		categorias := admin.Group("/categorias", RequiereAdmin(service))
		{
			categorias.PUT("/", handler.AsignarCategoria)
			categorias.GET("/:grupo/:categoria", handler.UsuariosPorCategoria)
			categorias.GET("/:grupo/usuario/:id", handler.CategoriaDeUsuario)
			categorias.DELETE("/:grupo/usuario/:id", handler.RemoverDeCategorias)
		}
	}
}
