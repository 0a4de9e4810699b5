package domain

import (
	"context"
	"errors"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrYaInscrito              = errors.New("el usuario ya está inscrito en el grupo")
	ErrInscripcionNoEncontrada = errors.New("inscripción no encontrada")
)

// ---------- Interfaces (Ports) ----------

// InscripcionRepository define las operaciones sobre group_enrollments.
type InscripcionRepository interface {
	Create(ctx context.Context, i *InscripcionGrupo, evt sharedDomain.OutboxEvent) error

	// Existe indica si ya hay una inscripción para (usuario, grupo).
	Existe(ctx context.Context, userID uuid.UUID, grupo string) (bool, error)

	// List devuelve todas las inscripciones.
	List(ctx context.Context) ([]InscripcionGrupo, error)

	// ListPorUsuario devuelve las inscripciones de un usuario.
	ListPorUsuario(ctx context.Context, userID uuid.UUID) ([]InscripcionGrupo, error)

	// ListPorGrupo devuelve las inscripciones de un grupo.
	ListPorGrupo(ctx context.Context, grupo string) ([]InscripcionGrupo, error)

	// Delete retira al usuario del grupo. ErrInscripcionNoEncontrada si
	// no estaba inscrito.
	Delete(ctx context.Context, userID uuid.UUID, grupo string, evt sharedDomain.OutboxEvent) error
}
