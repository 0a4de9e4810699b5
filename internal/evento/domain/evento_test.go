package domain

import (
	"testing"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEventoAbierto(t *testing.T) {
	apertura := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	vencimiento := time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)

	evento := &Evento{
		Nombre:           "Festival de Danza",
		FechaApertura:    apertura,
		FechaVencimiento: vencimiento,
		Activo:           true,
	}

	tests := []struct {
		name    string
		ahora   time.Time
		activo  bool
		abierto bool
	}{
		{name: "dentro de la ventana", ahora: time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC), activo: true, abierto: true},
		{name: "exactamente en la apertura", ahora: apertura, activo: true, abierto: true},
		{name: "exactamente en el vencimiento", ahora: vencimiento, activo: true, abierto: true},
		{name: "antes de abrir", ahora: apertura.Add(-time.Second), activo: true, abierto: false},
		{name: "después de vencer", ahora: vencimiento.Add(time.Second), activo: true, abierto: false},
		{name: "inactivo aunque la ventana esté vigente", ahora: time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC), activo: false, abierto: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evento.Activo = tt.activo
			assert.Equal(t, tt.abierto, evento.Abierto(tt.ahora))
		})
	}
}

func TestFiltrarAbiertos(t *testing.T) {
	ahora := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)

	vigente := &Evento{
		ID:               uuid.New(),
		Nombre:           "Concierto",
		FechaApertura:    ahora.Add(-24 * time.Hour),
		FechaVencimiento: ahora.Add(24 * time.Hour),
		Activo:           true,
	}
	vencido := &Evento{
		ID:               uuid.New(),
		Nombre:           "Obra de teatro",
		FechaApertura:    ahora.Add(-72 * time.Hour),
		FechaVencimiento: ahora.Add(-48 * time.Hour),
		Activo:           true,
	}
	apagado := &Evento{
		ID:               uuid.New(),
		Nombre:           "Recital",
		FechaApertura:    ahora.Add(-24 * time.Hour),
		FechaVencimiento: ahora.Add(24 * time.Hour),
		Activo:           false,
	}

	abiertos := FiltrarAbiertos([]*Evento{vigente, vencido, apagado}, ahora)

	assert.Len(t, abiertos, 1)
	assert.Equal(t, vigente.ID, abiertos[0].ID)
}

func TestUnirRegistrosEvento_DescartaHuerfanas(t *testing.T) {
	ana := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Ana Ruiz", Genero: usuarioDomain.GeneroMujer}
	concierto := &Evento{ID: uuid.New(), Nombre: "Concierto"}

	valida := EntradaAsistenciaEvento{ID: uuid.New(), UserID: ana.ID, EventoID: concierto.ID, Timestamp: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)}
	sinUsuario := EntradaAsistenciaEvento{ID: uuid.New(), UserID: uuid.New(), EventoID: concierto.ID, Timestamp: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)}
	sinEvento := EntradaAsistenciaEvento{ID: uuid.New(), UserID: ana.ID, EventoID: uuid.New(), Timestamp: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)}

	registros := UnirRegistrosEvento(
		[]EntradaAsistenciaEvento{valida, sinUsuario, sinEvento},
		[]*usuarioDomain.PerfilUsuario{ana},
		[]*Evento{concierto},
	)

	assert.Len(t, registros, 1)
	assert.Equal(t, valida.ID, registros[0].Entrada.ID)
	assert.Equal(t, ana, registros[0].Perfil)
	assert.Equal(t, concierto, registros[0].Evento)
}

func TestUnirRegistrosEvento_OrdenDescendente(t *testing.T) {
	ana := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Ana Ruiz"}
	concierto := &Evento{ID: uuid.New(), Nombre: "Concierto"}

	vieja := EntradaAsistenciaEvento{ID: uuid.New(), UserID: ana.ID, EventoID: concierto.ID, Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	nueva := EntradaAsistenciaEvento{ID: uuid.New(), UserID: ana.ID, EventoID: concierto.ID, Timestamp: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)}

	registros := UnirRegistrosEvento(
		[]EntradaAsistenciaEvento{vieja, nueva},
		[]*usuarioDomain.PerfilUsuario{ana},
		[]*Evento{concierto},
	)

	assert.Len(t, registros, 2)
	assert.Equal(t, nueva.ID, registros[0].Entrada.ID)
	assert.Equal(t, vieja.ID, registros[1].Entrada.ID)
}
