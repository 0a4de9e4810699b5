package domain

import (
	"context"
	"errors"
	"time"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrAdminNoEncontrado     = errors.New("administrador no encontrado")
	ErrEncargadoDuplicado    = errors.New("este usuario ya está encargado de otro grupo")
	ErrEncargadoNoEncontrado = errors.New("encargado no encontrado")
	ErrRolInsuficiente       = errors.New("el usuario no tiene rol de director ni monitor")
	ErrCategoriaInvalida     = errors.New("categoría de grupo desconocida")
	ErrSinCategoria          = errors.New("el usuario no tiene categoría en el grupo")
)

// ---------- Interfaces (Ports) ----------

// AdminRepository define las operaciones sobre admin_users.
type AdminRepository interface {
	Create(ctx context.Context, a *UsuarioAdmin, evt sharedDomain.OutboxEvent) error

	// Buscar devuelve ErrAdminNoEncontrado si el par no coincide.
	Buscar(ctx context.Context, documento, correo string) (*UsuarioAdmin, error)

	List(ctx context.Context) ([]*UsuarioAdmin, error)
}

// EncargadoRepository define las operaciones sobre group_managers.
type EncargadoRepository interface {
	Create(ctx context.Context, e *EncargadoGrupo, evt sharedDomain.OutboxEvent) error

	// AsignacionActiva devuelve la asignación vigente (no removida) del
	// usuario, o ErrEncargadoNoEncontrado si no tiene ninguna.
	AsignacionActiva(ctx context.Context, userID uuid.UUID) (*EncargadoGrupo, error)

	// ListPorGrupo devuelve las asignaciones vigentes del grupo.
	ListPorGrupo(ctx context.Context, grupo string) ([]EncargadoGrupo, error)

	// Remover marca la asignación como removida sin borrarla.
	Remover(ctx context.Context, id uuid.UUID, cuando time.Time, evt sharedDomain.OutboxEvent) error
}

// CategoriaRepository define las operaciones sobre group_category_assignments.
type CategoriaRepository interface {
	// Reemplazar borra la asignación previa del (usuario, grupo) si existe
	// y escribe la nueva.
	Reemplazar(ctx context.Context, a *AsignacionCategoria, evt sharedDomain.OutboxEvent) error

	// ListPorCategoria devuelve las asignaciones de una categoría en un grupo.
	ListPorCategoria(ctx context.Context, grupo string, categoria CategoriaGrupo) ([]AsignacionCategoria, error)

	// CategoriaDe devuelve ErrSinCategoria si el usuario no tiene asignación.
	CategoriaDe(ctx context.Context, userID uuid.UUID, grupo string) (CategoriaGrupo, error)

	// RemoverDeCategorias borra todas las asignaciones del (usuario, grupo).
	RemoverDeCategorias(ctx context.Context, userID uuid.UUID, grupo string) error
}
