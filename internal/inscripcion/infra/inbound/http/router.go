package http

import "github.com/gin-gonic/gin"

func RegisterInscripcionRoutes(r *gin.Engine, handler *InscripcionHandler) {
	inscripciones := r.Group("/inscripciones")
	{
		inscripciones.POST("/", handler.InscribirUsuario)
		inscripciones.DELETE("/", handler.RetirarUsuario)
		inscripciones.GET("/usuario/:id", handler.InscripcionesDeUsuario)
		inscripciones.GET("/grupos", handler.GruposConInscritos)
		inscripciones.GET("/grupos/:grupo", handler.UsuariosInscritos)
	}
}
