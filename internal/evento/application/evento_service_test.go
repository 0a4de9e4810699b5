package application

import (
	"context"
	"testing"
	"time"

	"github.com/davicafu/asistencia-cultural/internal/evento/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/davicafu/asistencia-cultural/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func eventoDePrueba(nombre string, activo bool) *domain.Evento {
	ahora := time.Now().UTC()
	return &domain.Evento{
		Nombre:           nombre,
		Hora:             "18:00",
		Lugar:            "Auditorio Central",
		FechaApertura:    ahora.Add(-time.Hour),
		FechaVencimiento: ahora.Add(24 * time.Hour),
		Activo:           activo,
	}
}

func TestCrearEvento(t *testing.T) {
	repo := mocks.NewInMemoryEventoRepo()
	service := NewEventoService(repo, mocks.NewInMemoryUsuarioRepo(), mocks.NewDummyCache(), zap.NewNop())

	evento, err := service.CrearEvento(context.Background(), eventoDePrueba("Concierto", true))
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, evento.ID)

	assert.Len(t, repo.Outbox, 1)
	assert.Equal(t, domain.EventoCreado, repo.Outbox[0].EventType)
}

func TestCrearEvento_VentanaInvalida(t *testing.T) {
	repo := mocks.NewInMemoryEventoRepo()
	service := NewEventoService(repo, mocks.NewInMemoryUsuarioRepo(), mocks.NewDummyCache(), zap.NewNop())

	malo := eventoDePrueba("Concierto", true)
	malo.FechaVencimiento = malo.FechaApertura.Add(-time.Hour)

	_, err := service.CrearEvento(context.Background(), malo)
	assert.ErrorIs(t, err, domain.ErrEventoInvalido)
	assert.Empty(t, repo.Eventos)
}

func TestEventosActivos_FiltraCerrados(t *testing.T) {
	repo := mocks.NewInMemoryEventoRepo()
	service := NewEventoService(repo, mocks.NewInMemoryUsuarioRepo(), mocks.NewDummyCache(), zap.NewNop())

	abierto, _ := service.CrearEvento(context.Background(), eventoDePrueba("Abierto", true))
	_, _ = service.CrearEvento(context.Background(), eventoDePrueba("Apagado", false))

	vencido := eventoDePrueba("Vencido", true)
	vencido.FechaApertura = time.Now().UTC().Add(-48 * time.Hour)
	vencido.FechaVencimiento = time.Now().UTC().Add(-24 * time.Hour)
	_, _ = service.CrearEvento(context.Background(), vencido)

	activos, err := service.EventosActivos(context.Background())
	assert.NoError(t, err)
	assert.Len(t, activos, 1)
	assert.Equal(t, abierto.ID, activos[0].ID)
}

func TestAlternarActivo(t *testing.T) {
	repo := mocks.NewInMemoryEventoRepo()
	service := NewEventoService(repo, mocks.NewInMemoryUsuarioRepo(), mocks.NewDummyCache(), zap.NewNop())

	evento, _ := service.CrearEvento(context.Background(), eventoDePrueba("Concierto", true))

	activo, err := service.AlternarActivo(context.Background(), evento.ID)
	assert.NoError(t, err)
	assert.False(t, activo)

	activo, err = service.AlternarActivo(context.Background(), evento.ID)
	assert.NoError(t, err)
	assert.True(t, activo)
}

func TestRegistrarAsistencia_EventoInexistente(t *testing.T) {
	service := NewEventoService(mocks.NewInMemoryEventoRepo(), mocks.NewInMemoryUsuarioRepo(), mocks.NewDummyCache(), zap.NewNop())

	_, err := service.RegistrarAsistencia(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrEventoNoEncontrado)
}

func TestEliminarEvento_CascadaDeAsistencias(t *testing.T) {
	repo := mocks.NewInMemoryEventoRepo()
	perfiles := mocks.NewInMemoryUsuarioRepo()
	service := NewEventoService(repo, perfiles, mocks.NewDummyCache(), zap.NewNop())

	ana := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Ana Ruiz", Genero: usuarioDomain.GeneroMujer}
	perfiles.Perfiles[ana.ID] = ana

	evento, _ := service.CrearEvento(context.Background(), eventoDePrueba("Concierto", true))
	otro, _ := service.CrearEvento(context.Background(), eventoDePrueba("Recital", true))

	_, err := service.RegistrarAsistencia(context.Background(), ana.ID, evento.ID)
	assert.NoError(t, err)
	_, err = service.RegistrarAsistencia(context.Background(), ana.ID, otro.ID)
	assert.NoError(t, err)

	err = service.EliminarEvento(context.Background(), evento.ID)
	assert.NoError(t, err)

	// sobreviven solo las asistencias del otro evento
	restantes, _ := repo.ListAsistencias(context.Background())
	assert.Len(t, restantes, 1)
	assert.Equal(t, otro.ID, restantes[0].EventoID)
}

func TestEstadisticasEvento(t *testing.T) {
	repo := mocks.NewInMemoryEventoRepo()
	perfiles := mocks.NewInMemoryUsuarioRepo()
	service := NewEventoService(repo, perfiles, mocks.NewDummyCache(), zap.NewNop())

	ana := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Ana Ruiz", Genero: usuarioDomain.GeneroMujer}
	luis := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Luis Paz", Genero: usuarioDomain.GeneroHombre}
	perfiles.Perfiles[ana.ID] = ana
	perfiles.Perfiles[luis.ID] = luis

	evento, _ := service.CrearEvento(context.Background(), eventoDePrueba("Festival", true))
	_, _ = service.RegistrarAsistencia(context.Background(), ana.ID, evento.ID)
	_, _ = service.RegistrarAsistencia(context.Background(), luis.ID, evento.ID)

	stats, err := service.Estadisticas(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalParticipantes)
	assert.Equal(t, 1, stats.PorGenero.Mujer)
	assert.Equal(t, 1, stats.PorGenero.Hombre)
	assert.Equal(t, 2, stats.PorEvento["Festival"])
}
