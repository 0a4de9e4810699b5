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
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrUsuarioYaExiste     = errors.New("el usuario ya existe")
	ErrPerfilInvalido      = errors.New("perfil inválido")
)

// ---------- Interfaces (Ports) ----------

// UsuarioRepository define las operaciones persistentes sobre la colección
// user_profiles.
type UsuarioRepository interface {
	// Debe devolver ErrUsuarioYaExiste si la entidad ya existe.
	Create(ctx context.Context, u *PerfilUsuario, evt sharedDomain.OutboxEvent) error

	// Debe devolver ErrUsuarioNoEncontrado si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*PerfilUsuario, error)

	// List devuelve todos los perfiles ordenados por fecha de creación
	// descendente. El matcher hace un escaneo O(n) sobre este resultado.
	List(ctx context.Context) ([]*PerfilUsuario, error)

	// ActualizarRol cambia el rol del perfil.
	ActualizarRol(ctx context.Context, id uuid.UUID, rol Rol) error

	// ActualizarUltimaAsistencia se invoca cada vez que se guarda una
	// asistencia (de grupo o de evento) del usuario.
	ActualizarUltimaAsistencia(ctx context.Context, id uuid.UUID, t time.Time) error

	// DeleteByID elimina el perfil. El borrado en cascada de sus
	// asistencias es responsabilidad del servicio.
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}

// EliminadorAsistencias es el contrato que el contexto de asistencia expone
// para el borrado en cascada al eliminar un usuario.
type EliminadorAsistencias interface {
	EliminarPorUsuario(ctx context.Context, userID uuid.UUID) error
}
