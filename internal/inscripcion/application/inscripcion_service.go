package application

import (
	"context"
	"time"

	"github.com/davicafu/asistencia-cultural/internal/inscripcion/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PerfilProveedor es lo que este contexto necesita del contexto de usuario.
type PerfilProveedor interface {
	List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error)
}

// InscripcionService define los casos de uso sobre inscripciones estables
// a grupos culturales.
type InscripcionService struct {
	repo     domain.InscripcionRepository
	perfiles PerfilProveedor
	log      *zap.Logger
}

func NewInscripcionService(repo domain.InscripcionRepository, perfiles PerfilProveedor, log *zap.Logger) *InscripcionService {
	return &InscripcionService{
		repo:     repo,
		perfiles: perfiles,
		log:      log,
	}
}

// InscribirUsuario inscribe al usuario en el grupo. La unicidad es
// leer-luego-escribir: una segunda inscripción al mismo grupo falla con
// ErrYaInscrito y deja exactamente un registro.
func (s *InscripcionService) InscribirUsuario(ctx context.Context, userID uuid.UUID, grupo string) (*domain.InscripcionGrupo, error) {
	existe, err := s.repo.Existe(ctx, userID, grupo)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.ErrYaInscrito
	}

	ahora := time.Now().UTC()
	inscripcion := &domain.InscripcionGrupo{
		ID:               uuid.New(),
		UserID:           userID,
		GrupoCultural:    grupo,
		FechaInscripcion: ahora,
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "inscripcion",
		AggregateID:   inscripcion.ID.String(),
		EventType:     domain.UsuarioInscrito,
		Payload:       inscripcion,
		CreatedAt:     ahora,
	}

	if err := s.repo.Create(ctx, inscripcion, evt); err != nil {
		return nil, err
	}

	return inscripcion, nil
}

// InscripcionesDeUsuario devuelve las inscripciones de un usuario.
func (s *InscripcionService) InscripcionesDeUsuario(ctx context.Context, userID uuid.UUID) ([]domain.InscripcionGrupo, error) {
	return s.repo.ListPorUsuario(ctx, userID)
}

// EstaInscritoEnAlguno indica si el usuario pertenece al menos a un grupo.
func (s *InscripcionService) EstaInscritoEnAlguno(ctx context.Context, userID uuid.UUID) (bool, error) {
	inscripciones, err := s.repo.ListPorUsuario(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(inscripciones) > 0, nil
}

// GruposConInscritos devuelve los grupos con su total de inscritos,
// ordenados por nombre.
func (s *InscripcionService) GruposConInscritos(ctx context.Context) ([]domain.GrupoConInscritos, error) {
	inscripciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ContarPorGrupo(inscripciones), nil
}

// UsuariosInscritos devuelve los inscritos de un grupo con sus perfiles,
// ordenados por nombres.
func (s *InscripcionService) UsuariosInscritos(ctx context.Context, grupo string) ([]domain.UsuarioInscritoEnGrupo, error) {
	inscripciones, err := s.repo.ListPorGrupo(ctx, grupo)
	if err != nil {
		return nil, err
	}

	perfiles, err := s.perfiles.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.UnirConPerfiles(inscripciones, perfiles), nil
}

// RetirarUsuario elimina la inscripción del usuario en el grupo.
func (s *InscripcionService) RetirarUsuario(ctx context.Context, userID uuid.UUID, grupo string) error {
	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "inscripcion",
		AggregateID:   userID.String(),
		EventType:     domain.UsuarioRetirado,
		Payload:       map[string]string{"user_id": userID.String(), "grupo_cultural": grupo},
		CreatedAt:     time.Now().UTC(),
	}

	return s.repo.Delete(ctx, userID, grupo, evt)
}
