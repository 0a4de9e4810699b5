package domain

import (
	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
)

// EstadisticasEvento es la variante de estadísticas por evento: mismo
// desglose por género, programa y facultad, conteo plano por evento y sin
// dimensión de mes.
type EstadisticasEvento struct {
	TotalParticipantes int                                         `json:"total_participantes"`
	PorGenero          asistenciaDomain.ConteoGeneros              `json:"por_genero"`
	PorPrograma        map[string]*asistenciaDomain.DesgloseGenero `json:"por_programa"`
	PorFacultad        map[string]*asistenciaDomain.DesgloseGenero `json:"por_facultad"`
	PorEvento          map[string]int                              `json:"por_evento"`
}

// GenerarEstadisticasEvento reduce los registros de asistencia a eventos en
// una sola pasada, claveando por nombre del evento.
func GenerarEstadisticasEvento(registros []RegistroEvento) EstadisticasEvento {
	stats := EstadisticasEvento{
		TotalParticipantes: len(registros),
		PorPrograma:        make(map[string]*asistenciaDomain.DesgloseGenero),
		PorFacultad:        make(map[string]*asistenciaDomain.DesgloseGenero),
		PorEvento:          make(map[string]int),
	}

	for _, r := range registros {
		genero := r.Perfil.GeneroNormalizado()
		stats.PorGenero.Incrementar(genero)

		if programa := r.Perfil.ProgramaAcademico; programa != "" {
			desglose, ok := stats.PorPrograma[programa]
			if !ok {
				desglose = &asistenciaDomain.DesgloseGenero{}
				stats.PorPrograma[programa] = desglose
			}
			desglose.Incrementar(genero)
			desglose.Total++
		}

		if facultad := r.Perfil.Facultad; facultad != "" {
			desglose, ok := stats.PorFacultad[facultad]
			if !ok {
				desglose = &asistenciaDomain.DesgloseGenero{}
				stats.PorFacultad[facultad] = desglose
			}
			desglose.Incrementar(genero)
			desglose.Total++
		}

		stats.PorEvento[r.Evento.Nombre]++
	}

	return stats
}
