package domain

import (
	"sort"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
)

const (
	AsistenciaTopic = "asistencia-events"

	AsistenciaRegistrada = "asistencia.registrada"
)

// EntradaAsistencia es un hecho inmutable: el usuario X asistió al grupo
// cultural Y en el instante T. Bitácora de solo inserción.
type EntradaAsistencia struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	GrupoCultural string    `json:"grupo_cultural"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *EntradaAsistencia) PartitionKey() string {
	return e.UserID.String()
}

// RegistroAsistencia es la vista unida entrada + perfil del propietario.
// Es el insumo del agregador de estadísticas.
type RegistroAsistencia struct {
	Entrada EntradaAsistencia            `json:"entrada"`
	Perfil  *usuarioDomain.PerfilUsuario `json:"perfil"`
}

// UnirRegistros cruza las entradas con sus perfiles por userId. Las entradas
// cuyo usuario ya no existe se descartan en silencio: es el comportamiento
// de facto del borrado en cascada. El resultado queda ordenado por fecha
// descendente.
func UnirRegistros(entradas []EntradaAsistencia, perfiles []*usuarioDomain.PerfilUsuario) []RegistroAsistencia {
	porID := make(map[uuid.UUID]*usuarioDomain.PerfilUsuario, len(perfiles))
	for _, p := range perfiles {
		porID[p.ID] = p
	}

	registros := make([]RegistroAsistencia, 0, len(entradas))
	for _, e := range entradas {
		perfil, ok := porID[e.UserID]
		if !ok {
			continue
		}
		registros = append(registros, RegistroAsistencia{Entrada: e, Perfil: perfil})
	}

	sort.SliceStable(registros, func(i, j int) bool {
		return registros[i].Entrada.Timestamp.After(registros[j].Entrada.Timestamp)
	})

	return registros
}

// ---------------- Seguimiento por grupo ----------------

// ParticipanteGrupo resume la actividad de un usuario dentro de un grupo.
type ParticipanteGrupo struct {
	UserID           uuid.UUID `json:"user_id"`
	Nombre           string    `json:"nombre"`
	ConteoMensual    int       `json:"conteo_mensual"`
	ConteoTotal      int       `json:"conteo_total"`
	UltimaAsistencia time.Time `json:"ultima_asistencia"`
}

// SeguimientoGrupo agrupa los participantes de un grupo cultural con sus
// conteos del mes en curso y totales.
type SeguimientoGrupo struct {
	Grupo         string              `json:"grupo"`
	Participantes []ParticipanteGrupo `json:"participantes"`
}

// CalcularSeguimiento proyecta las entradas en el seguimiento por grupo.
// A diferencia de las estadísticas, aquí las entradas huérfanas se
// conservan con nombre "Usuario desconocido". Participantes ordenados por
// total descendente, grupos por nombre.
func CalcularSeguimiento(entradas []EntradaAsistencia, perfiles []*usuarioDomain.PerfilUsuario, ahora time.Time) []SeguimientoGrupo {
	porID := make(map[uuid.UUID]*usuarioDomain.PerfilUsuario, len(perfiles))
	for _, p := range perfiles {
		porID[p.ID] = p
	}

	mesActual := ClaveMes(ahora)

	type acumulado struct {
		total   int
		mensual int
		ultima  time.Time
	}
	grupos := make(map[string]map[uuid.UUID]*acumulado)

	for _, e := range entradas {
		participantes, ok := grupos[e.GrupoCultural]
		if !ok {
			participantes = make(map[uuid.UUID]*acumulado)
			grupos[e.GrupoCultural] = participantes
		}

		acc, ok := participantes[e.UserID]
		if !ok {
			acc = &acumulado{ultima: e.Timestamp}
			participantes[e.UserID] = acc
		}

		acc.total++
		if ClaveMes(e.Timestamp) == mesActual {
			acc.mensual++
		}
		if e.Timestamp.After(acc.ultima) {
			acc.ultima = e.Timestamp
		}
	}

	resultado := make([]SeguimientoGrupo, 0, len(grupos))
	for grupo, participantes := range grupos {
		lista := make([]ParticipanteGrupo, 0, len(participantes))
		for userID, acc := range participantes {
			nombre := "Usuario desconocido"
			if perfil, ok := porID[userID]; ok {
				nombre = perfil.Nombres
			}
			lista = append(lista, ParticipanteGrupo{
				UserID:           userID,
				Nombre:           nombre,
				ConteoMensual:    acc.mensual,
				ConteoTotal:      acc.total,
				UltimaAsistencia: acc.ultima,
			})
		}

		sort.SliceStable(lista, func(i, j int) bool {
			return lista[i].ConteoTotal > lista[j].ConteoTotal
		})

		resultado = append(resultado, SeguimientoGrupo{Grupo: grupo, Participantes: lista})
	}

	sort.Slice(resultado, func(i, j int) bool {
		return resultado[i].Grupo < resultado[j].Grupo
	})

	return resultado
}
