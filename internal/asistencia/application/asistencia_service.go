package application

import (
	"context"
	"time"

	"github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedCache "github.com/davicafu/asistencia-cultural/internal/shared/platform/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CacheKeyEstadisticas guarda el último snapshot calculado de estadísticas.
const CacheKeyEstadisticas = "asistencia:estadisticas"

// PerfilProveedor es lo que este contexto necesita del contexto de usuario:
// la lista de perfiles para el join y la marca de última asistencia.
type PerfilProveedor interface {
	List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error)
	ActualizarUltimaAsistencia(ctx context.Context, id uuid.UUID, t time.Time) error
}

// AsistenciaService define los casos de uso sobre la bitácora de asistencias.
type AsistenciaService struct {
	repo      domain.AsistenciaRepository
	perfiles  PerfilProveedor
	espejo    domain.EspejoLocal
	analitica domain.RegistroAnalitico
	cache     sharedCache.Cache
	log       *zap.Logger
}

func NewAsistenciaService(
	repo domain.AsistenciaRepository,
	perfiles PerfilProveedor,
	espejo domain.EspejoLocal,
	analitica domain.RegistroAnalitico,
	cache sharedCache.Cache,
	log *zap.Logger,
) *AsistenciaService {
	return &AsistenciaService{
		repo:      repo,
		perfiles:  perfiles,
		espejo:    espejo,
		analitica: analitica,
		cache:     cache,
		log:       log,
	}
}

// RegistrarAsistencia agrega una entrada a la bitácora y actualiza la
// última asistencia del usuario.
func (s *AsistenciaService) RegistrarAsistencia(ctx context.Context, userID uuid.UUID, grupoCultural string) (*domain.EntradaAsistencia, error) {
	ahora := time.Now().UTC()
	entrada := &domain.EntradaAsistencia{
		ID:            uuid.New(),
		UserID:        userID,
		GrupoCultural: grupoCultural,
		Timestamp:     ahora,
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "asistencia",
		AggregateID:   entrada.ID.String(),
		EventType:     domain.AsistenciaRegistrada,
		Payload:       entrada,
		CreatedAt:     ahora,
	}

	if err := s.repo.Create(ctx, entrada, evt); err != nil {
		return nil, err
	}

	if err := s.perfiles.ActualizarUltimaAsistencia(ctx, userID, ahora); err != nil {
		return nil, err
	}

	// el snapshot de estadísticas queda obsoleto
	sharedCache.AsyncDelete(ctx, s.cache, CacheKeyEstadisticas, s.log)

	return entrada, nil
}

// ObtenerRegistros devuelve la vista unida asistencia + perfil, más
// recientes primero. Las entradas huérfanas se descartan.
func (s *AsistenciaService) ObtenerRegistros(ctx context.Context) ([]domain.RegistroAsistencia, error) {
	entradas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	perfiles, err := s.perfiles.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.UnirRegistros(entradas, perfiles), nil
}

// Estadisticas calcula el agregado sobre la vista unida. Si el almacén
// primario falla intenta el snapshot en caché y luego el espejo local;
// si ninguno existe, propaga el error original sin modificar.
func (s *AsistenciaService) Estadisticas(ctx context.Context) (domain.EstadisticasAsistencia, error) {
	registros, err := s.ObtenerRegistros(ctx)
	if err != nil {
		return s.estadisticasDeRespaldo(ctx, err)
	}

	stats := domain.GenerarEstadisticas(registros)

	sharedCache.AsyncSet(ctx, s.cache, CacheKeyEstadisticas, stats, 300, s.log)
	s.reflejarEnBackground(registros)

	return stats, nil
}

func (s *AsistenciaService) estadisticasDeRespaldo(ctx context.Context, causa error) (domain.EstadisticasAsistencia, error) {
	s.log.Warn("⚠️ Almacén primario no disponible, usando respaldo", zap.Error(causa))

	if s.cache != nil {
		var stats domain.EstadisticasAsistencia
		if ok, _ := s.cache.Get(ctx, CacheKeyEstadisticas, &stats); ok {
			return stats, nil
		}
	}

	if s.espejo != nil {
		registros, err := s.espejo.Cargar(ctx)
		if err == nil {
			return domain.GenerarEstadisticas(registros), nil
		}
		s.log.Warn("⚠️ Espejo local no disponible", zap.Error(err))
	}

	return domain.EstadisticasAsistencia{}, causa
}

func (s *AsistenciaService) reflejarEnBackground(registros []domain.RegistroAsistencia) {
	if s.espejo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.espejo.Reemplazar(ctx, registros); err != nil {
			s.log.Warn("⚠️ No se pudo actualizar el espejo local", zap.Error(err))
		}
	}()
}

// Seguimiento proyecta la bitácora en el seguimiento por grupo.
func (s *AsistenciaService) Seguimiento(ctx context.Context) ([]domain.SeguimientoGrupo, error) {
	entradas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	perfiles, err := s.perfiles.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.CalcularSeguimiento(entradas, perfiles, time.Now().UTC()), nil
}

// ExportarAnaliticas vuelca la vista unida actual al sumidero de analítica.
func (s *AsistenciaService) ExportarAnaliticas(ctx context.Context) (int, error) {
	if s.analitica == nil {
		return 0, nil
	}

	registros, err := s.ObtenerRegistros(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.analitica.LogBatch(ctx, registros); err != nil {
		return 0, err
	}

	return len(registros), nil
}
