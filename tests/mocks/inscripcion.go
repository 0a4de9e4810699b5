package mocks

import (
	"context"
	"sync"

	inscripcionDomain "github.com/davicafu/asistencia-cultural/internal/inscripcion/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// InMemoryInscripcionRepo simula InscripcionRepository con outbox incluido.
type InMemoryInscripcionRepo struct {
	Inscripciones []inscripcionDomain.InscripcionGrupo
	Outbox        []sharedDomain.OutboxEvent
	mu            sync.Mutex
}

func NewInMemoryInscripcionRepo() *InMemoryInscripcionRepo {
	return &InMemoryInscripcionRepo{
		Inscripciones: []inscripcionDomain.InscripcionGrupo{},
		Outbox:        []sharedDomain.OutboxEvent{},
	}
}

func (r *InMemoryInscripcionRepo) Create(ctx context.Context, i *inscripcionDomain.InscripcionGrupo, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Inscripciones = append(r.Inscripciones, *i)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryInscripcionRepo) Existe(ctx context.Context, userID uuid.UUID, grupo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.Inscripciones {
		if i.UserID == userID && i.GrupoCultural == grupo {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryInscripcionRepo) List(ctx context.Context) ([]inscripcionDomain.InscripcionGrupo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]inscripcionDomain.InscripcionGrupo(nil), r.Inscripciones...), nil
}

func (r *InMemoryInscripcionRepo) ListPorUsuario(ctx context.Context, userID uuid.UUID) ([]inscripcionDomain.InscripcionGrupo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []inscripcionDomain.InscripcionGrupo
	for _, i := range r.Inscripciones {
		if i.UserID == userID {
			list = append(list, i)
		}
	}
	return list, nil
}

func (r *InMemoryInscripcionRepo) ListPorGrupo(ctx context.Context, grupo string) ([]inscripcionDomain.InscripcionGrupo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []inscripcionDomain.InscripcionGrupo
	for _, i := range r.Inscripciones {
		if i.GrupoCultural == grupo {
			list = append(list, i)
		}
	}
	return list, nil
}

func (r *InMemoryInscripcionRepo) Delete(ctx context.Context, userID uuid.UUID, grupo string, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, i := range r.Inscripciones {
		if i.UserID == userID && i.GrupoCultural == grupo {
			r.Inscripciones = append(r.Inscripciones[:idx], r.Inscripciones[idx+1:]...)
			r.Outbox = append(r.Outbox, evt)
			return nil
		}
	}
	return inscripcionDomain.ErrInscripcionNoEncontrada
}
