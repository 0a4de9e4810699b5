package domain

import (
	"context"
	"errors"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrEventoNoEncontrado = errors.New("evento no encontrado")
	ErrEventoInvalido     = errors.New("evento inválido")
)

// ---------- Interfaces (Ports) ----------

// EventoRepository define las operaciones sobre las colecciones events y
// event_attendance_records.
type EventoRepository interface {
	Create(ctx context.Context, e *Evento, evt sharedDomain.OutboxEvent) error

	// GetByID debe devolver ErrEventoNoEncontrado si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Evento, error)

	// List devuelve todos los eventos, más recientes primero.
	List(ctx context.Context) ([]*Evento, error)

	// ActualizarActivo alterna la bandera 'activo' del evento.
	ActualizarActivo(ctx context.Context, id uuid.UUID, activo bool) error

	// DeleteByID elimina el evento y, en cascada, todas sus asistencias.
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error

	// CrearAsistencia agrega una entrada a event_attendance_records.
	CrearAsistencia(ctx context.Context, e *EntradaAsistenciaEvento, evt sharedDomain.OutboxEvent) error

	// ListAsistencias devuelve todas las entradas de asistencia a eventos.
	ListAsistencias(ctx context.Context) ([]EntradaAsistenciaEvento, error)
}
