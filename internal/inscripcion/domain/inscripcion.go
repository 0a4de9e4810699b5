package domain

import (
	"sort"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
)

const (
	InscripcionTopic = "inscripcion-events"

	UsuarioInscrito = "inscripcion.creada"
	UsuarioRetirado = "inscripcion.retirada"
)

// InscripcionGrupo es la membresía estable de un usuario en un grupo
// cultural, independiente de sus asistencias puntuales.
type InscripcionGrupo struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	GrupoCultural    string    `json:"grupo_cultural"`
	FechaInscripcion time.Time `json:"fecha_inscripcion"`
}

func (i *InscripcionGrupo) PartitionKey() string {
	return i.UserID.String()
}

// GrupoConInscritos resume cuánta gente tiene inscrita cada grupo.
type GrupoConInscritos struct {
	Nombre         string `json:"nombre"`
	TotalInscritos int    `json:"total_inscritos"`
}

// UsuarioInscritoEnGrupo es la vista unida inscripción + perfil.
type UsuarioInscritoEnGrupo struct {
	Inscripcion InscripcionGrupo             `json:"inscripcion"`
	Perfil      *usuarioDomain.PerfilUsuario `json:"perfil"`
}

// ContarPorGrupo agrupa las inscripciones por grupo cultural, ordenado por
// nombre de grupo.
func ContarPorGrupo(inscripciones []InscripcionGrupo) []GrupoConInscritos {
	conteos := make(map[string]int)
	for _, i := range inscripciones {
		conteos[i.GrupoCultural]++
	}

	grupos := make([]GrupoConInscritos, 0, len(conteos))
	for nombre, total := range conteos {
		grupos = append(grupos, GrupoConInscritos{Nombre: nombre, TotalInscritos: total})
	}

	sort.Slice(grupos, func(i, j int) bool {
		return grupos[i].Nombre < grupos[j].Nombre
	})

	return grupos
}

// UnirConPerfiles cruza las inscripciones de un grupo con sus perfiles,
// ordenado por nombres. Las inscripciones sin perfil se descartan.
func UnirConPerfiles(inscripciones []InscripcionGrupo, perfiles []*usuarioDomain.PerfilUsuario) []UsuarioInscritoEnGrupo {
	porID := make(map[uuid.UUID]*usuarioDomain.PerfilUsuario, len(perfiles))
	for _, p := range perfiles {
		porID[p.ID] = p
	}

	inscritos := make([]UsuarioInscritoEnGrupo, 0, len(inscripciones))
	for _, i := range inscripciones {
		perfil, ok := porID[i.UserID]
		if !ok {
			continue
		}
		inscritos = append(inscritos, UsuarioInscritoEnGrupo{Inscripcion: i, Perfil: perfil})
	}

	sort.SliceStable(inscritos, func(i, j int) bool {
		return inscritos[i].Perfil.Nombres < inscritos[j].Perfil.Nombres
	})

	return inscritos
}
