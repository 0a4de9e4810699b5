package http

import "github.com/gin-gonic/gin"

func RegisterUsuarioRoutes(r *gin.Engine, handler *UsuarioHandler) {
	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("/", handler.RegistrarUsuario)
		usuarios.POST("/similares", handler.BuscarSimilares)
		usuarios.GET("/:id", handler.ObtenerUsuario)
		usuarios.GET("/", handler.ListarUsuarios)
		usuarios.PUT("/:id/rol", handler.ActualizarRol)
		usuarios.DELETE("/:id", handler.EliminarUsuario)
	}
}
