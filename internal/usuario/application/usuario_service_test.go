package application

import (
	"context"
	"testing"
	"time"

	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/davicafu/asistencia-cultural/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func perfilValido() *domain.PerfilUsuario {
	return &domain.PerfilUsuario{
		Nombres:           "Ana María Ruiz",
		Correo:            "ana@univ.edu.co",
		TipoDocumento:     "CC",
		NumeroDocumento:   "1002003001",
		Telefono:          "3001112233",
		Edad:              21,
		Genero:            domain.GeneroMujer,
		Sede:              "Central",
		Estamento:         domain.EstamentoEstudiante,
		CodigoEstudiante:  "20201234",
		Facultad:          "Artes",
		ProgramaAcademico: "Música",
	}
}

func TestRegistrarUsuario_Success(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	asistencias := mocks.NewInMemoryAsistenciaRepo()
	service := NewUsuarioService(repo, asistencias, mocks.NewDummyCache(), zap.NewNop())

	perfil, err := service.RegistrarUsuario(context.Background(), perfilValido())
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, perfil.ID)
	assert.False(t, perfil.CreatedAt.IsZero())

	// se creó el evento outbox en la misma operación
	assert.Len(t, repo.Outbox, 1)
	assert.Equal(t, domain.UsuarioCreado, repo.Outbox[0].EventType)
	assert.Equal(t, perfil.ID.String(), repo.Outbox[0].AggregateID)
}

func TestRegistrarUsuario_PerfilInvalido(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	service := NewUsuarioService(repo, mocks.NewInMemoryAsistenciaRepo(), mocks.NewDummyCache(), zap.NewNop())

	invalido := perfilValido()
	invalido.Facultad = "" // estudiante sin facultad

	_, err := service.RegistrarUsuario(context.Background(), invalido)
	assert.ErrorIs(t, err, domain.ErrPerfilInvalido)
	assert.Empty(t, repo.Perfiles)
	assert.Empty(t, repo.Outbox)
}

func TestBuscarSimilares_DelegaEnElMatcher(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	service := NewUsuarioService(repo, mocks.NewInMemoryAsistenciaRepo(), mocks.NewDummyCache(), zap.NewNop())

	registrado, err := service.RegistrarUsuario(context.Background(), perfilValido())
	assert.NoError(t, err)

	similares, err := service.BuscarSimilares(context.Background(), domain.ConsultaSimilitud{
		NumeroDocumento: "1002003001",
	})
	assert.NoError(t, err)
	assert.Len(t, similares, 1)
	assert.Equal(t, registrado.ID, similares[0].Usuario.ID)
	assert.Equal(t, 40.0, similares[0].Similitud)
}

func TestObtenerUsuario_NoEncontrado(t *testing.T) {
	service := NewUsuarioService(mocks.NewInMemoryUsuarioRepo(), mocks.NewInMemoryAsistenciaRepo(), mocks.NewDummyCache(), zap.NewNop())

	_, err := service.ObtenerUsuario(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)
}

func TestObtenerUsuario_CacheHit(t *testing.T) {
	id := uuid.New()
	perfil := perfilValido()
	perfil.ID = id

	cache := mocks.NewDummyCache()
	cache.SetForTest(domain.CacheKeyPerfil(id), perfil)

	// el repo está vacío: si responde, fue desde caché
	service := NewUsuarioService(mocks.NewInMemoryUsuarioRepo(), mocks.NewInMemoryAsistenciaRepo(), cache, zap.NewNop())

	obtenido, err := service.ObtenerUsuario(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, perfil.NumeroDocumento, obtenido.NumeroDocumento)
}

func TestActualizarRol(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	service := NewUsuarioService(repo, mocks.NewInMemoryAsistenciaRepo(), mocks.NewDummyCache(), zap.NewNop())

	perfil, _ := service.RegistrarUsuario(context.Background(), perfilValido())

	err := service.ActualizarRol(context.Background(), perfil.ID, domain.RolDirector)
	assert.NoError(t, err)

	actualizado, _ := repo.GetByID(context.Background(), perfil.ID)
	assert.Equal(t, domain.RolDirector, actualizado.Rol)
	assert.True(t, actualizado.EsEncargado())
}

func TestEliminarUsuario_CascadaDeAsistencias(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	asistencias := mocks.NewInMemoryAsistenciaRepo()
	service := NewUsuarioService(repo, asistencias, mocks.NewDummyCache(), zap.NewNop())

	perfil, _ := service.RegistrarUsuario(context.Background(), perfilValido())

	// asistencias del usuario y de un tercero
	ajena := uuid.New()
	for _, e := range []asistenciaDomain.EntradaAsistencia{
		{ID: uuid.New(), UserID: perfil.ID, GrupoCultural: "Coro", Timestamp: time.Now().UTC()},
		{ID: uuid.New(), UserID: perfil.ID, GrupoCultural: "Teatro", Timestamp: time.Now().UTC()},
		{ID: uuid.New(), UserID: ajena, GrupoCultural: "Coro", Timestamp: time.Now().UTC()},
	} {
		entrada := e
		_ = asistencias.Create(context.Background(), &entrada, sharedDomain.OutboxEvent{ID: uuid.New()})
	}

	err := service.EliminarUsuario(context.Background(), perfil.ID)
	assert.NoError(t, err)

	_, err = repo.GetByID(context.Background(), perfil.ID)
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)

	// solo sobrevive la asistencia del otro usuario
	restantes, _ := asistencias.List(context.Background())
	assert.Len(t, restantes, 1)
	assert.Equal(t, ajena, restantes[0].UserID)

	// evento de eliminación en el outbox
	ultimo := repo.Outbox[len(repo.Outbox)-1]
	assert.Equal(t, domain.UsuarioEliminado, ultimo.EventType)
}
