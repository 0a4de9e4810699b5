package application

import (
	"context"
	"testing"

	"github.com/davicafu/asistencia-cultural/internal/inscripcion/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/davicafu/asistencia-cultural/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInscribirUsuario_Success(t *testing.T) {
	repo := mocks.NewInMemoryInscripcionRepo()
	service := NewInscripcionService(repo, mocks.NewInMemoryUsuarioRepo(), zap.NewNop())

	userID := uuid.New()
	inscripcion, err := service.InscribirUsuario(context.Background(), userID, "Coro")
	assert.NoError(t, err)
	assert.Equal(t, "Coro", inscripcion.GrupoCultural)

	assert.Len(t, repo.Outbox, 1)
	assert.Equal(t, domain.UsuarioInscrito, repo.Outbox[0].EventType)
}

func TestInscribirUsuario_Duplicada(t *testing.T) {
	repo := mocks.NewInMemoryInscripcionRepo()
	service := NewInscripcionService(repo, mocks.NewInMemoryUsuarioRepo(), zap.NewNop())

	userID := uuid.New()
	_, err := service.InscribirUsuario(context.Background(), userID, "Coro")
	assert.NoError(t, err)

	// la segunda inscripción al mismo grupo falla y deja un solo registro
	_, err = service.InscribirUsuario(context.Background(), userID, "Coro")
	assert.ErrorIs(t, err, domain.ErrYaInscrito)
	assert.Len(t, repo.Inscripciones, 1)

	// pero otro grupo sí es válido
	_, err = service.InscribirUsuario(context.Background(), userID, "Teatro")
	assert.NoError(t, err)
	assert.Len(t, repo.Inscripciones, 2)
}

func TestGruposConInscritos(t *testing.T) {
	repo := mocks.NewInMemoryInscripcionRepo()
	service := NewInscripcionService(repo, mocks.NewInMemoryUsuarioRepo(), zap.NewNop())

	_, _ = service.InscribirUsuario(context.Background(), uuid.New(), "Teatro")
	_, _ = service.InscribirUsuario(context.Background(), uuid.New(), "Coro")
	_, _ = service.InscribirUsuario(context.Background(), uuid.New(), "Coro")

	grupos, err := service.GruposConInscritos(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []domain.GrupoConInscritos{
		{Nombre: "Coro", TotalInscritos: 2},
		{Nombre: "Teatro", TotalInscritos: 1},
	}, grupos)
}

func TestUsuariosInscritos_ConPerfiles(t *testing.T) {
	repo := mocks.NewInMemoryInscripcionRepo()
	perfiles := mocks.NewInMemoryUsuarioRepo()
	service := NewInscripcionService(repo, perfiles, zap.NewNop())

	luis := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Luis Paz"}
	ana := &usuarioDomain.PerfilUsuario{ID: uuid.New(), Nombres: "Ana Ruiz"}
	perfiles.Perfiles[luis.ID] = luis
	perfiles.Perfiles[ana.ID] = ana

	_, _ = service.InscribirUsuario(context.Background(), luis.ID, "Coro")
	_, _ = service.InscribirUsuario(context.Background(), ana.ID, "Coro")

	inscritos, err := service.UsuariosInscritos(context.Background(), "Coro")
	assert.NoError(t, err)
	assert.Len(t, inscritos, 2)
	assert.Equal(t, "Ana Ruiz", inscritos[0].Perfil.Nombres) // orden por nombres
	assert.Equal(t, "Luis Paz", inscritos[1].Perfil.Nombres)
}

func TestRetirarUsuario(t *testing.T) {
	repo := mocks.NewInMemoryInscripcionRepo()
	service := NewInscripcionService(repo, mocks.NewInMemoryUsuarioRepo(), zap.NewNop())

	userID := uuid.New()
	_, _ = service.InscribirUsuario(context.Background(), userID, "Coro")

	err := service.RetirarUsuario(context.Background(), userID, "Coro")
	assert.NoError(t, err)
	assert.Empty(t, repo.Inscripciones)

	err = service.RetirarUsuario(context.Background(), userID, "Coro")
	assert.ErrorIs(t, err, domain.ErrInscripcionNoEncontrada)
}

func TestEstaInscritoEnAlguno(t *testing.T) {
	service := NewInscripcionService(mocks.NewInMemoryInscripcionRepo(), mocks.NewInMemoryUsuarioRepo(), zap.NewNop())

	userID := uuid.New()
	inscrito, err := service.EstaInscritoEnAlguno(context.Background(), userID)
	assert.NoError(t, err)
	assert.False(t, inscrito)

	_, _ = service.InscribirUsuario(context.Background(), userID, "Danza")

	inscrito, err = service.EstaInscritoEnAlguno(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, inscrito)
}
