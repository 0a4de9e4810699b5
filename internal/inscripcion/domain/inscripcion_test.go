package domain

import (
	"testing"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContarPorGrupo(t *testing.T) {
	inscripciones := []InscripcionGrupo{
		{ID: uuid.New(), UserID: uuid.New(), GrupoCultural: "Teatro"},
		{ID: uuid.New(), UserID: uuid.New(), GrupoCultural: "Coro"},
		{ID: uuid.New(), UserID: uuid.New(), GrupoCultural: "Coro"},
	}

	grupos := ContarPorGrupo(inscripciones)

	assert.Equal(t, []GrupoConInscritos{
		{Nombre: "Coro", TotalInscritos: 2},
		{Nombre: "Teatro", TotalInscritos: 1},
	}, grupos)
}

func TestContarPorGrupo_Vacio(t *testing.T) {
	assert.Empty(t, ContarPorGrupo(nil))
}

func TestUnirConPerfiles_OrdenaPorNombresYDescartaHuerfanas(t *testing.T) {
	ana := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Ana Ruiz"}
	luis := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Luis Paz"}

	ahora := time.Now().UTC()
	inscripciones := []InscripcionGrupo{
		{ID: uuid.New(), UserID: luis.ID, GrupoCultural: "Coro", FechaInscripcion: ahora},
		{ID: uuid.New(), UserID: ana.ID, GrupoCultural: "Coro", FechaInscripcion: ahora},
		{ID: uuid.New(), UserID: uuid.New(), GrupoCultural: "Coro", FechaInscripcion: ahora},
	}

	inscritos := UnirConPerfiles(inscripciones, []*usuarioDomain.PerfilUsuario{ana, luis})

	assert.Len(t, inscritos, 2)
	assert.Equal(t, "Ana Ruiz", inscritos[0].Perfil.Nombres)
	assert.Equal(t, "Luis Paz", inscritos[1].Perfil.Nombres)
}
