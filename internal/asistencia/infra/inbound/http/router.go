package http

import "github.com/gin-gonic/gin"

func RegisterAsistenciaRoutes(r *gin.Engine, handler *AsistenciaHandler) {
	asistencias := r.Group("/asistencias")
	{
		asistencias.POST("/", handler.RegistrarAsistencia)
		asistencias.GET("/", handler.ObtenerRegistros)
		asistencias.GET("/estadisticas", handler.Estadisticas)
		asistencias.GET("/seguimiento", handler.Seguimiento)
		asistencias.POST("/exportar", handler.ExportarAnaliticas)
	}
}
