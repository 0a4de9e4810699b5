package events

import (
	"encoding/json"
	"time"
)

// IntegrationEvent es el sobre común de todos los eventos de integración.
// Son contratos entre contextos, NO entidades del dominio.
type IntegrationEvent struct {
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey agrupa los eventos del mismo agregado en la misma partición.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}
