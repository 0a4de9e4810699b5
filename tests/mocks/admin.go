package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	adminDomain "github.com/davicafu/asistencia-cultural/internal/admin/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// InMemoryAdminRepo simula AdminRepository con outbox incluido.
type InMemoryAdminRepo struct {
	Admins []*adminDomain.UsuarioAdmin
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
}

func NewInMemoryAdminRepo() *InMemoryAdminRepo {
	return &InMemoryAdminRepo{}
}

func (r *InMemoryAdminRepo) Create(ctx context.Context, a *adminDomain.UsuarioAdmin, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Admins = append(r.Admins, a)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryAdminRepo) Buscar(ctx context.Context, documento, correo string) (*adminDomain.UsuarioAdmin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Admins {
		if a.NumeroDocumento == documento && strings.EqualFold(a.Correo, correo) {
			return a, nil
		}
	}
	return nil, adminDomain.ErrAdminNoEncontrado
}

func (r *InMemoryAdminRepo) List(ctx context.Context) ([]*adminDomain.UsuarioAdmin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*adminDomain.UsuarioAdmin(nil), r.Admins...), nil
}

// InMemoryEncargadoRepo simula EncargadoRepository con remoción lógica.
type InMemoryEncargadoRepo struct {
	Encargados []*adminDomain.EncargadoGrupo
	Outbox     []sharedDomain.OutboxEvent
	mu         sync.Mutex
}

func NewInMemoryEncargadoRepo() *InMemoryEncargadoRepo {
	return &InMemoryEncargadoRepo{}
}

func (r *InMemoryEncargadoRepo) Create(ctx context.Context, e *adminDomain.EncargadoGrupo, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Encargados = append(r.Encargados, e)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryEncargadoRepo) AsignacionActiva(ctx context.Context, userID uuid.UUID) (*adminDomain.EncargadoGrupo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Encargados {
		if e.UserID == userID && !e.Removido {
			return e, nil
		}
	}
	return nil, adminDomain.ErrEncargadoNoEncontrado
}

func (r *InMemoryEncargadoRepo) ListPorGrupo(ctx context.Context, grupo string) ([]adminDomain.EncargadoGrupo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []adminDomain.EncargadoGrupo
	for _, e := range r.Encargados {
		if e.GrupoCultural == grupo && !e.Removido {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (r *InMemoryEncargadoRepo) Remover(ctx context.Context, id uuid.UUID, cuando time.Time, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Encargados {
		if e.ID == id {
			e.Removido = true
			e.RemovidoEn = &cuando
			r.Outbox = append(r.Outbox, evt)
			return nil
		}
	}
	return adminDomain.ErrEncargadoNoEncontrado
}

// InMemoryCategoriaRepo simula CategoriaRepository con semántica de reemplazo.
type InMemoryCategoriaRepo struct {
	Asignaciones []adminDomain.AsignacionCategoria
	Outbox       []sharedDomain.OutboxEvent
	mu           sync.Mutex
}

func NewInMemoryCategoriaRepo() *InMemoryCategoriaRepo {
	return &InMemoryCategoriaRepo{}
}

func (r *InMemoryCategoriaRepo) Reemplazar(ctx context.Context, a *adminDomain.AsignacionCategoria, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	restantes := r.Asignaciones[:0]
	for _, x := range r.Asignaciones {
		if !(x.UserID == a.UserID && x.GrupoCultural == a.GrupoCultural) {
			restantes = append(restantes, x)
		}
	}
	r.Asignaciones = append(restantes, *a)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryCategoriaRepo) ListPorCategoria(ctx context.Context, grupo string, categoria adminDomain.CategoriaGrupo) ([]adminDomain.AsignacionCategoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []adminDomain.AsignacionCategoria
	for _, a := range r.Asignaciones {
		if a.GrupoCultural == grupo && a.Categoria == categoria {
			list = append(list, a)
		}
	}
	return list, nil
}

func (r *InMemoryCategoriaRepo) CategoriaDe(ctx context.Context, userID uuid.UUID, grupo string) (adminDomain.CategoriaGrupo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Asignaciones {
		if a.UserID == userID && a.GrupoCultural == grupo {
			return a.Categoria, nil
		}
	}
	return "", adminDomain.ErrSinCategoria
}

func (r *InMemoryCategoriaRepo) RemoverDeCategorias(ctx context.Context, userID uuid.UUID, grupo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	restantes := r.Asignaciones[:0]
	for _, a := range r.Asignaciones {
		if !(a.UserID == userID && a.GrupoCultural == grupo) {
			restantes = append(restantes, a)
		}
	}
	r.Asignaciones = restantes
	return nil
}
