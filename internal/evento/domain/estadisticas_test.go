package domain

import (
	"testing"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func registroDe(perfil *usuarioDomain.PerfilUsuario, evento *Evento, ts time.Time) RegistroEvento {
	return RegistroEvento{
		Entrada: EntradaAsistenciaEvento{ID: uuid.New(), UserID: perfil.ID, EventoID: evento.ID, Timestamp: ts},
		Perfil:  perfil,
		Evento:  evento,
	}
}

func TestGenerarEstadisticasEvento(t *testing.T) {
	ana := &usuarioDomain.PerfilUsuario{
		ID:                uuid.New(),
		Nombres:           "Ana Ruiz",
		Genero:            usuarioDomain.GeneroMujer,
		Estamento:         usuarioDomain.EstamentoEstudiante,
		Facultad:          "Artes",
		ProgramaAcademico: "Música",
	}
	luis := &usuarioDomain.PerfilUsuario{
		ID:      uuid.New(),
		Nombres: "Luis Paz",
		Genero:  usuarioDomain.GeneroHombre,
	}

	concierto := &Evento{ID: uuid.New(), Nombre: "Concierto"}
	recital := &Evento{ID: uuid.New(), Nombre: "Recital"}

	ts := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	registros := []RegistroEvento{
		registroDe(ana, concierto, ts),
		registroDe(ana, recital, ts),
		registroDe(luis, concierto, ts),
	}

	stats := GenerarEstadisticasEvento(registros)

	assert.Equal(t, 3, stats.TotalParticipantes)
	assert.Equal(t, 2, stats.PorGenero.Mujer)
	assert.Equal(t, 1, stats.PorGenero.Hombre)
	assert.Equal(t, 0, stats.PorGenero.Otro)

	// desglose por evento, plano
	assert.Equal(t, map[string]int{"Concierto": 2, "Recital": 1}, stats.PorEvento)

	// luis no trae programa ni facultad: no genera cubos vacíos
	assert.Len(t, stats.PorPrograma, 1)
	assert.Equal(t, 2, stats.PorPrograma["Música"].Total)
	assert.Equal(t, 2, stats.PorPrograma["Música"].Mujer)
	assert.Len(t, stats.PorFacultad, 1)
	assert.Equal(t, 2, stats.PorFacultad["Artes"].Total)
}

func TestGenerarEstadisticasEvento_TotalesConsistentes(t *testing.T) {
	perfiles := []*usuarioDomain.PerfilUsuario{
		{ID: uuid.New(), Genero: usuarioDomain.GeneroMujer},
		{ID: uuid.New(), Genero: usuarioDomain.GeneroHombre},
		{ID: uuid.New(), Genero: usuarioDomain.GeneroOtro},
		{ID: uuid.New(), Genero: "no binario"}, // fuera del enum cae en 'otro'
	}
	evento := &Evento{ID: uuid.New(), Nombre: "Festival"}

	var registros []RegistroEvento
	for _, p := range perfiles {
		registros = append(registros, registroDe(p, evento, time.Now().UTC()))
	}

	stats := GenerarEstadisticasEvento(registros)

	assert.Equal(t, stats.TotalParticipantes, stats.PorGenero.Total())
	assert.Equal(t, 2, stats.PorGenero.Otro)
	assert.Equal(t, stats.TotalParticipantes, stats.PorEvento["Festival"])
}

func TestGenerarEstadisticasEvento_SinRegistros(t *testing.T) {
	stats := GenerarEstadisticasEvento(nil)

	assert.Equal(t, 0, stats.TotalParticipantes)
	assert.Empty(t, stats.PorEvento)
	assert.Empty(t, stats.PorPrograma)
	assert.Empty(t, stats.PorFacultad)
}
