package domain

import (
	"context"
	"errors"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrSinEspejoLocal = errors.New("no hay copia local de asistencias")
)

// ---------- Interfaces (Ports) ----------

// AsistenciaRepository define las operaciones sobre attendance_records.
// La bitácora es de solo inserción: no hay update.
type AsistenciaRepository interface {
	Create(ctx context.Context, e *EntradaAsistencia, evt sharedDomain.OutboxEvent) error

	// List devuelve todas las entradas de asistencia.
	List(ctx context.Context) ([]EntradaAsistencia, error)

	// EliminarPorUsuario borra todas las entradas de un usuario. Lo usa
	// la cascada al eliminar un perfil.
	EliminarPorUsuario(ctx context.Context, userID uuid.UUID) error
}

// EspejoLocal guarda la última vista unida conocida para degradar lecturas
// cuando el almacén primario falla (equivalente al respaldo local del
// cliente original).
type EspejoLocal interface {
	// Reemplazar sustituye la copia local completa por los registros dados.
	Reemplazar(ctx context.Context, registros []RegistroAsistencia) error

	// Cargar devuelve la copia local; ErrSinEspejoLocal si nunca se escribió.
	Cargar(ctx context.Context) ([]RegistroAsistencia, error)
}

// RegistroAnalitico es el sumidero de analítica para reportes externos.
type RegistroAnalitico interface {
	LogBatch(ctx context.Context, registros []RegistroAsistencia) error
}
