package domain

import "time"

// Agregador de estadísticas: reducción pura y determinista sobre la vista
// unida de asistencias. Nunca se escribe de vuelta al almacén.

// ConteoGeneros son los tres cubos fijos de género.
type ConteoGeneros struct {
	Mujer  int `json:"mujer"`
	Hombre int `json:"hombre"`
	Otro   int `json:"otro"`
}

// Incrementar suma uno al cubo del género ya normalizado a minúsculas.
func (c *ConteoGeneros) Incrementar(genero string) {
	switch genero {
	case "mujer":
		c.Mujer++
	case "hombre":
		c.Hombre++
	default:
		c.Otro++
	}
}

// Total devuelve la suma de los tres cubos.
func (c ConteoGeneros) Total() int {
	return c.Mujer + c.Hombre + c.Otro
}

// DesgloseGenero es el cubo por categoría (programa, facultad) con su total.
type DesgloseGenero struct {
	ConteoGeneros
	Total int `json:"total"`
}

// EstadisticasAsistencia es la proyección agregada para tableros y reportes.
type EstadisticasAsistencia struct {
	TotalParticipantes int                        `json:"total_participantes"`
	PorGenero          ConteoGeneros              `json:"por_genero"`
	PorPrograma        map[string]*DesgloseGenero `json:"por_programa"`
	PorFacultad        map[string]*DesgloseGenero `json:"por_facultad"`
	PorGrupoCultural   map[string]int             `json:"por_grupo_cultural"`
	PorMes             map[string]map[string]int  `json:"por_mes"`
}

// ClaveMes trunca un instante a su mes calendario en UTC, formato YYYY-MM.
// Se usa como clave porque ordena cronológicamente al ordenar lexicográfico.
func ClaveMes(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// GenerarEstadisticas reduce los registros en una sola pasada. Es
// idempotente: la misma entrada produce siempre la misma salida.
func GenerarEstadisticas(registros []RegistroAsistencia) EstadisticasAsistencia {
	stats := EstadisticasAsistencia{
		TotalParticipantes: len(registros),
		PorPrograma:        make(map[string]*DesgloseGenero),
		PorFacultad:        make(map[string]*DesgloseGenero),
		PorGrupoCultural:   make(map[string]int),
		PorMes:             make(map[string]map[string]int),
	}

	for _, r := range registros {
		genero := r.Perfil.GeneroNormalizado()
		stats.PorGenero.Incrementar(genero)

		// solo cuando el registro trae programa; nunca un cubo vacío
		if programa := r.Perfil.ProgramaAcademico; programa != "" {
			desglose, ok := stats.PorPrograma[programa]
			if !ok {
				desglose = &DesgloseGenero{}
				stats.PorPrograma[programa] = desglose
			}
			desglose.Incrementar(genero)
			desglose.Total++
		}

		if facultad := r.Perfil.Facultad; facultad != "" {
			desglose, ok := stats.PorFacultad[facultad]
			if !ok {
				desglose = &DesgloseGenero{}
				stats.PorFacultad[facultad] = desglose
			}
			desglose.Incrementar(genero)
			desglose.Total++
		}

		stats.PorGrupoCultural[r.Entrada.GrupoCultural]++

		mes := ClaveMes(r.Entrada.Timestamp)
		if stats.PorMes[mes] == nil {
			stats.PorMes[mes] = make(map[string]int)
		}
		stats.PorMes[mes][r.Entrada.GrupoCultural]++
	}

	return stats
}
