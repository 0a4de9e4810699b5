package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
)

// InMemoryUsuarioRepo simula UsuarioRepository con outbox incluido.
type InMemoryUsuarioRepo struct {
	Perfiles map[uuid.UUID]*usuarioDomain.PerfilUsuario
	Outbox   []sharedDomain.OutboxEvent
	mu       sync.Mutex
}

func NewInMemoryUsuarioRepo() *InMemoryUsuarioRepo {
	return &InMemoryUsuarioRepo{
		Perfiles: make(map[uuid.UUID]*usuarioDomain.PerfilUsuario),
		Outbox:   []sharedDomain.OutboxEvent{},
	}
}

func (r *InMemoryUsuarioRepo) Create(ctx context.Context, u *usuarioDomain.PerfilUsuario, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Perfiles[u.ID]; ok {
		return usuarioDomain.ErrUsuarioYaExiste
	}
	r.Perfiles[u.ID] = u
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryUsuarioRepo) GetByID(ctx context.Context, id uuid.UUID) (*usuarioDomain.PerfilUsuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Perfiles[id]
	if !ok {
		return nil, usuarioDomain.ErrUsuarioNoEncontrado
	}
	return u, nil
}

func (r *InMemoryUsuarioRepo) List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*usuarioDomain.PerfilUsuario, 0, len(r.Perfiles))
	for _, u := range r.Perfiles {
		list = append(list, u)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *InMemoryUsuarioRepo) ActualizarRol(ctx context.Context, id uuid.UUID, rol usuarioDomain.Rol) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Perfiles[id]
	if !ok {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	u.Rol = rol
	return nil
}

func (r *InMemoryUsuarioRepo) ActualizarUltimaAsistencia(ctx context.Context, id uuid.UUID, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Perfiles[id]
	if !ok {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	u.UltimaAsistencia = t
	return nil
}

func (r *InMemoryUsuarioRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Perfiles[id]; !ok {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	delete(r.Perfiles, id)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

// ------------------- Outbox -------------------

func (r *InMemoryUsuarioRepo) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.Outbox) {
		limit = len(r.Outbox)
	}
	pending := r.Outbox[:limit]
	return append([]sharedDomain.OutboxEvent(nil), pending...), nil
}

func (r *InMemoryUsuarioRepo) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, evt := range r.Outbox {
		if evt.ID == id {
			r.Outbox = append(r.Outbox[:i], r.Outbox[i+1:]...)
			return nil
		}
	}
	return usuarioDomain.ErrUsuarioNoEncontrado
}
