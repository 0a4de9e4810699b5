package application

import (
	"context"
	"time"

	"github.com/davicafu/asistencia-cultural/internal/evento/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedCache "github.com/davicafu/asistencia-cultural/internal/shared/platform/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CacheKeyEstadisticasEvento guarda el último snapshot de estadísticas por evento.
const CacheKeyEstadisticasEvento = "evento:estadisticas"

// PerfilProveedor es lo que este contexto necesita del contexto de usuario.
type PerfilProveedor interface {
	List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error)
	ActualizarUltimaAsistencia(ctx context.Context, id uuid.UUID, t time.Time) error
}

// EventoService define los casos de uso sobre eventos puntuales y su
// asistencia propia, separada de la bitácora de grupos.
type EventoService struct {
	repo     domain.EventoRepository
	perfiles PerfilProveedor
	cache    sharedCache.Cache
	log      *zap.Logger
}

func NewEventoService(repo domain.EventoRepository, perfiles PerfilProveedor, cache sharedCache.Cache, log *zap.Logger) *EventoService {
	return &EventoService{
		repo:     repo,
		perfiles: perfiles,
		cache:    cache,
		log:      log,
	}
}

// CrearEvento valida y persiste un evento nuevo junto a su evento outbox.
func (s *EventoService) CrearEvento(ctx context.Context, evento *domain.Evento) (*domain.Evento, error) {
	ahora := time.Now().UTC()
	evento.ID = uuid.New()
	evento.CreatedAt = ahora

	if err := evento.Validar(); err != nil {
		return nil, err
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "evento",
		AggregateID:   evento.ID.String(),
		EventType:     domain.EventoCreado,
		Payload:       evento,
		CreatedAt:     ahora,
	}

	if err := s.repo.Create(ctx, evento, evt); err != nil {
		return nil, err
	}

	return evento, nil
}

// ListarEventos devuelve todos los eventos, más recientes primero.
func (s *EventoService) ListarEventos(ctx context.Context) ([]*domain.Evento, error) {
	return s.repo.List(ctx)
}

// EventosActivos devuelve solo los eventos abiertos en este instante.
func (s *EventoService) EventosActivos(ctx context.Context) ([]*domain.Evento, error) {
	eventos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FiltrarAbiertos(eventos, time.Now().UTC()), nil
}

// AlternarActivo invierte la bandera 'activo' del evento y devuelve el
// nuevo valor.
func (s *EventoService) AlternarActivo(ctx context.Context, id uuid.UUID) (bool, error) {
	evento, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	nuevo := !evento.Activo
	if err := s.repo.ActualizarActivo(ctx, id, nuevo); err != nil {
		return false, err
	}

	return nuevo, nil
}

// EliminarEvento borra el evento y, en cascada, sus asistencias.
func (s *EventoService) EliminarEvento(ctx context.Context, id uuid.UUID) error {
	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "evento",
		AggregateID:   id.String(),
		EventType:     domain.EventoEliminado,
		Payload:       id,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return err
	}

	sharedCache.AsyncDelete(ctx, s.cache, CacheKeyEstadisticasEvento, s.log)

	return nil
}

// RegistrarAsistencia agrega una entrada de asistencia al evento y
// actualiza la última asistencia del usuario.
func (s *EventoService) RegistrarAsistencia(ctx context.Context, userID, eventoID uuid.UUID) (*domain.EntradaAsistenciaEvento, error) {
	if _, err := s.repo.GetByID(ctx, eventoID); err != nil {
		return nil, err
	}

	ahora := time.Now().UTC()
	entrada := &domain.EntradaAsistenciaEvento{
		ID:        uuid.New(),
		UserID:    userID,
		EventoID:  eventoID,
		Timestamp: ahora,
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "evento",
		AggregateID:   entrada.ID.String(),
		EventType:     domain.AsistenciaEventoRegistrada,
		Payload:       entrada,
		CreatedAt:     ahora,
	}

	if err := s.repo.CrearAsistencia(ctx, entrada, evt); err != nil {
		return nil, err
	}

	if err := s.perfiles.ActualizarUltimaAsistencia(ctx, userID, ahora); err != nil {
		return nil, err
	}

	sharedCache.AsyncDelete(ctx, s.cache, CacheKeyEstadisticasEvento, s.log)

	return entrada, nil
}

// ObtenerRegistros devuelve la vista unida entrada + perfil + evento.
func (s *EventoService) ObtenerRegistros(ctx context.Context) ([]domain.RegistroEvento, error) {
	entradas, err := s.repo.ListAsistencias(ctx)
	if err != nil {
		return nil, err
	}

	perfiles, err := s.perfiles.List(ctx)
	if err != nil {
		return nil, err
	}

	eventos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.UnirRegistrosEvento(entradas, perfiles, eventos), nil
}

// Estadisticas calcula el agregado por evento sobre la vista unida.
func (s *EventoService) Estadisticas(ctx context.Context) (domain.EstadisticasEvento, error) {
	registros, err := s.ObtenerRegistros(ctx)
	if err != nil {
		if s.cache != nil {
			var stats domain.EstadisticasEvento
			if ok, _ := s.cache.Get(ctx, CacheKeyEstadisticasEvento, &stats); ok {
				s.log.Warn("⚠️ Almacén primario no disponible, usando snapshot en caché", zap.Error(err))
				return stats, nil
			}
		}
		return domain.EstadisticasEvento{}, err
	}

	stats := domain.GenerarEstadisticasEvento(registros)

	sharedCache.AsyncSet(ctx, s.cache, CacheKeyEstadisticasEvento, stats, 300, s.log)

	return stats, nil
}
