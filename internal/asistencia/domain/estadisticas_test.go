package domain

import (
	"testing"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func registroDePrueba(nombres string, genero usuarioDomain.Genero, grupo string, mes time.Time) RegistroAsistencia {
	id := uuid.New()
	return RegistroAsistencia{
		Entrada: EntradaAsistencia{
			ID:            uuid.New(),
			UserID:        id,
			GrupoCultural: grupo,
			Timestamp:     mes,
		},
		Perfil: &usuarioDomain.PerfilUsuario{
			ID:      id,
			Nombres: nombres,
			Genero:  genero,
		},
	}
}

func TestGenerarEstadisticas_EscenarioBase(t *testing.T) {
	registros := []RegistroAsistencia{
		registroDePrueba("Ana Ruiz", usuarioDomain.GeneroMujer, "Coro", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		registroDePrueba("Ana Ruiz", usuarioDomain.GeneroMujer, "Coro", time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)),
		registroDePrueba("Luis Paz", usuarioDomain.GeneroHombre, "Teatro", time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)),
	}

	stats := GenerarEstadisticas(registros)

	assert.Equal(t, 3, stats.TotalParticipantes)
	assert.Equal(t, ConteoGeneros{Mujer: 2, Hombre: 1, Otro: 0}, stats.PorGenero)
	assert.Equal(t, map[string]int{"Coro": 2, "Teatro": 1}, stats.PorGrupoCultural)
	assert.Equal(t, map[string]map[string]int{
		"2024-03": {"Coro": 1},
		"2024-04": {"Coro": 1, "Teatro": 1},
	}, stats.PorMes)
}

func TestGenerarEstadisticas_InvarianteDeTotales(t *testing.T) {
	registros := []RegistroAsistencia{
		registroDePrueba("Ana", usuarioDomain.GeneroMujer, "Coro", time.Now().UTC()),
		registroDePrueba("Luis", usuarioDomain.GeneroHombre, "Teatro", time.Now().UTC()),
		registroDePrueba("Sam", usuarioDomain.GeneroOtro, "Danza", time.Now().UTC()),
		registroDePrueba("Eva", usuarioDomain.GeneroMujer, "Coro", time.Now().UTC()),
	}

	stats := GenerarEstadisticas(registros)

	assert.Equal(t, len(registros), stats.TotalParticipantes)
	assert.Equal(t, len(registros), stats.PorGenero.Total())
}

func TestGenerarEstadisticas_Idempotente(t *testing.T) {
	registros := []RegistroAsistencia{
		registroDePrueba("Ana Ruiz", usuarioDomain.GeneroMujer, "Coro", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		registroDePrueba("Luis Paz", usuarioDomain.GeneroHombre, "Teatro", time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)),
	}

	primera := GenerarEstadisticas(registros)
	segunda := GenerarEstadisticas(registros)

	assert.Equal(t, primera, segunda)
}

func TestGenerarEstadisticas_SinCamposAcademicosNoCreaCubos(t *testing.T) {
	r := registroDePrueba("Ana Ruiz", usuarioDomain.GeneroMujer, "Coro", time.Now().UTC())
	// el perfil no trae programa ni facultad

	stats := GenerarEstadisticas([]RegistroAsistencia{r})

	assert.Empty(t, stats.PorPrograma)
	assert.Empty(t, stats.PorFacultad)
	assert.NotContains(t, stats.PorPrograma, "")
	assert.NotContains(t, stats.PorFacultad, "")
	assert.Equal(t, 1, stats.PorGrupoCultural["Coro"])
}

func TestGenerarEstadisticas_DesglosePorProgramaYFacultad(t *testing.T) {
	estudiante := registroDePrueba("Ana Ruiz", usuarioDomain.GeneroMujer, "Coro", time.Now().UTC())
	estudiante.Perfil.Estamento = usuarioDomain.EstamentoEstudiante
	estudiante.Perfil.ProgramaAcademico = "Música"
	estudiante.Perfil.Facultad = "Artes Integradas"

	otro := registroDePrueba("Luis Paz", usuarioDomain.GeneroHombre, "Coro", time.Now().UTC())
	otro.Perfil.Estamento = usuarioDomain.EstamentoEstudiante
	otro.Perfil.ProgramaAcademico = "Música"
	otro.Perfil.Facultad = "Artes Integradas"

	stats := GenerarEstadisticas([]RegistroAsistencia{estudiante, otro})

	assert.Len(t, stats.PorPrograma, 1)
	musica := stats.PorPrograma["Música"]
	assert.Equal(t, 1, musica.Mujer)
	assert.Equal(t, 1, musica.Hombre)
	assert.Equal(t, 2, musica.Total)

	artes := stats.PorFacultad["Artes Integradas"]
	assert.Equal(t, 2, artes.Total)
}

func TestClaveMes_UsaUTC(t *testing.T) {
	// 31 de marzo 23:00 en UTC-5 ya es abril en UTC
	bogota := time.FixedZone("America/Bogota", -5*3600)
	instante := time.Date(2024, 3, 31, 23, 0, 0, 0, bogota)

	assert.Equal(t, "2024-04", ClaveMes(instante))
}
