package application

import (
	"context"
	"time"

	"github.com/davicafu/asistencia-cultural/internal/usuario/domain"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedCache "github.com/davicafu/asistencia-cultural/internal/shared/platform/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UsuarioService define los casos de uso sobre perfiles: registro con
// reconocimiento de duplicados, consulta, roles y eliminación en cascada.
type UsuarioService struct {
	repo        domain.UsuarioRepository
	asistencias domain.EliminadorAsistencias
	cache       sharedCache.Cache
	log         *zap.Logger
}

// NewUsuarioService constructor
func NewUsuarioService(repo domain.UsuarioRepository, asistencias domain.EliminadorAsistencias, cache sharedCache.Cache, log *zap.Logger) *UsuarioService {
	return &UsuarioService{
		repo:        repo,
		asistencias: asistencias,
		cache:       cache,
		log:         log,
	}
}

// RegistrarUsuario valida el perfil, lo persiste junto a su evento outbox y
// lo deja en caché. El ID y las marcas de tiempo se asignan aquí.
func (s *UsuarioService) RegistrarUsuario(ctx context.Context, perfil *domain.PerfilUsuario) (*domain.PerfilUsuario, error) {
	ahora := time.Now().UTC()
	perfil.ID = uuid.New()
	perfil.CreatedAt = ahora
	perfil.UltimaAsistencia = ahora

	if err := perfil.Validar(); err != nil {
		return nil, err
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "usuario",
		AggregateID:   perfil.ID.String(),
		EventType:     domain.UsuarioCreado,
		Payload:       perfil,
		CreatedAt:     ahora,
	}

	if err := s.repo.Create(ctx, perfil, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncSet(ctx, s.cache, domain.CacheKeyPerfil(perfil.ID), perfil, 60, s.log)

	return perfil, nil
}

// BuscarSimilares ejecuta el matcher sobre todos los perfiles conocidos.
// Cualquier fallo de lectura del repositorio se propaga sin reintentos.
func (s *UsuarioService) BuscarSimilares(ctx context.Context, consulta domain.ConsultaSimilitud) ([]domain.UsuarioSimilar, error) {
	perfiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuscarSimilares(perfiles, consulta), nil
}

// ObtenerUsuario obtiene un perfil (primero intenta desde caché).
func (s *UsuarioService) ObtenerUsuario(ctx context.Context, id uuid.UUID) (*domain.PerfilUsuario, error) {
	if s.cache != nil {
		var u domain.PerfilUsuario
		if ok, _ := s.cache.Get(ctx, domain.CacheKeyPerfil(id), &u); ok {
			return &u, nil
		}
	}

	perfil, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sharedCache.AsyncSet(ctx, s.cache, domain.CacheKeyPerfil(id), perfil, 60, s.log)

	return perfil, nil
}

// ListarUsuarios devuelve todos los perfiles, más recientes primero.
func (s *UsuarioService) ListarUsuarios(ctx context.Context) ([]*domain.PerfilUsuario, error) {
	return s.repo.List(ctx)
}

// ActualizarRol cambia el rol de un usuario (solo lo usa el super admin).
func (s *UsuarioService) ActualizarRol(ctx context.Context, id uuid.UUID, rol domain.Rol) error {
	if err := s.repo.ActualizarRol(ctx, id, rol); err != nil {
		return err
	}

	sharedCache.AsyncDelete(ctx, s.cache, domain.CacheKeyPerfil(id), s.log)

	return nil
}

// EliminarUsuario borra primero las asistencias del usuario y luego su
// perfil, replicando la eliminación en cascada del almacén de documentos.
func (s *UsuarioService) EliminarUsuario(ctx context.Context, id uuid.UUID) error {
	if err := s.asistencias.EliminarPorUsuario(ctx, id); err != nil {
		return err
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "usuario",
		AggregateID:   id.String(),
		EventType:     domain.UsuarioEliminado,
		Payload:       id,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return err
	}

	sharedCache.AsyncDelete(ctx, s.cache, domain.CacheKeyPerfil(id), s.log)

	return nil
}
