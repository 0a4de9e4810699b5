package mocks

import (
	"context"
	"sort"
	"sync"

	eventoDomain "github.com/davicafu/asistencia-cultural/internal/evento/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// InMemoryEventoRepo simula EventoRepository con outbox incluido.
type InMemoryEventoRepo struct {
	Eventos     map[uuid.UUID]*eventoDomain.Evento
	Asistencias []eventoDomain.EntradaAsistenciaEvento
	Outbox      []sharedDomain.OutboxEvent
	mu          sync.Mutex
}

func NewInMemoryEventoRepo() *InMemoryEventoRepo {
	return &InMemoryEventoRepo{
		Eventos:     make(map[uuid.UUID]*eventoDomain.Evento),
		Asistencias: []eventoDomain.EntradaAsistenciaEvento{},
		Outbox:      []sharedDomain.OutboxEvent{},
	}
}

func (r *InMemoryEventoRepo) Create(ctx context.Context, e *eventoDomain.Evento, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Eventos[e.ID] = e
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryEventoRepo) GetByID(ctx context.Context, id uuid.UUID) (*eventoDomain.Evento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Eventos[id]
	if !ok {
		return nil, eventoDomain.ErrEventoNoEncontrado
	}
	return e, nil
}

func (r *InMemoryEventoRepo) List(ctx context.Context) ([]*eventoDomain.Evento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*eventoDomain.Evento, 0, len(r.Eventos))
	for _, e := range r.Eventos {
		list = append(list, e)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *InMemoryEventoRepo) ActualizarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Eventos[id]
	if !ok {
		return eventoDomain.ErrEventoNoEncontrado
	}
	e.Activo = activo
	return nil
}

func (r *InMemoryEventoRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Eventos[id]; !ok {
		return eventoDomain.ErrEventoNoEncontrado
	}
	delete(r.Eventos, id)

	// cascada sobre las asistencias del evento
	restantes := r.Asistencias[:0]
	for _, a := range r.Asistencias {
		if a.EventoID != id {
			restantes = append(restantes, a)
		}
	}
	r.Asistencias = restantes

	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryEventoRepo) CrearAsistencia(ctx context.Context, e *eventoDomain.EntradaAsistenciaEvento, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Asistencias = append(r.Asistencias, *e)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryEventoRepo) ListAsistencias(ctx context.Context) ([]eventoDomain.EntradaAsistenciaEvento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eventoDomain.EntradaAsistenciaEvento(nil), r.Asistencias...), nil
}
