package mocks

import (
	"context"
	"sync"

	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// InMemoryAsistenciaRepo simula AsistenciaRepository con outbox incluido.
type InMemoryAsistenciaRepo struct {
	Entradas []asistenciaDomain.EntradaAsistencia
	Outbox   []sharedDomain.OutboxEvent

	// FallarList simula la caída del almacén primario en las lecturas.
	FallarList error

	mu sync.Mutex
}

func NewInMemoryAsistenciaRepo() *InMemoryAsistenciaRepo {
	return &InMemoryAsistenciaRepo{
		Entradas: []asistenciaDomain.EntradaAsistencia{},
		Outbox:   []sharedDomain.OutboxEvent{},
	}
}

func (r *InMemoryAsistenciaRepo) Create(ctx context.Context, e *asistenciaDomain.EntradaAsistencia, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entradas = append(r.Entradas, *e)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryAsistenciaRepo) List(ctx context.Context) ([]asistenciaDomain.EntradaAsistencia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FallarList != nil {
		return nil, r.FallarList
	}
	return append([]asistenciaDomain.EntradaAsistencia(nil), r.Entradas...), nil
}

func (r *InMemoryAsistenciaRepo) EliminarPorUsuario(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	restantes := r.Entradas[:0]
	for _, e := range r.Entradas {
		if e.UserID != userID {
			restantes = append(restantes, e)
		}
	}
	r.Entradas = restantes
	return nil
}

// InMemoryEspejo simula el espejo local de registros.
type InMemoryEspejo struct {
	Registros []asistenciaDomain.RegistroAsistencia
	Escrito   bool
	mu        sync.Mutex
}

func (m *InMemoryEspejo) Reemplazar(ctx context.Context, registros []asistenciaDomain.RegistroAsistencia) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Registros = append([]asistenciaDomain.RegistroAsistencia(nil), registros...)
	m.Escrito = true
	return nil
}

func (m *InMemoryEspejo) Cargar(ctx context.Context) ([]asistenciaDomain.RegistroAsistencia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Escrito {
		return nil, asistenciaDomain.ErrSinEspejoLocal
	}
	return append([]asistenciaDomain.RegistroAsistencia(nil), m.Registros...), nil
}

// DummyAnalitica acumula los lotes volcados al sumidero de analítica.
type DummyAnalitica struct {
	Lotes [][]asistenciaDomain.RegistroAsistencia
	mu    sync.Mutex
}

func (d *DummyAnalitica) LogBatch(ctx context.Context, registros []asistenciaDomain.RegistroAsistencia) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Lotes = append(d.Lotes, registros)
	return nil
}
