package http

import "github.com/gin-gonic/gin"

func RegisterEventoRoutes(r *gin.Engine, handler *EventoHandler) {
	eventos := r.Group("/eventos")
	{
		eventos.POST("/", handler.CrearEvento)
		eventos.GET("/", handler.ListarEventos)
		eventos.GET("/activos", handler.EventosActivos)
		eventos.GET("/asistencias", handler.ObtenerRegistros)
		eventos.GET("/estadisticas", handler.Estadisticas)
		eventos.PUT("/:id/activo", handler.AlternarActivo)
		eventos.DELETE("/:id", handler.EliminarEvento)
		eventos.POST("/:id/asistencias", handler.RegistrarAsistencia)
	}
}
