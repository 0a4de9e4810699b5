package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
)

const (
	EventoTopic = "evento-events"

	EventoCreado               = "evento.creado"
	EventoEliminado            = "evento.eliminado"
	AsistenciaEventoRegistrada = "evento.asistencia_registrada"
)

// Evento es una actividad definida por un administrador con una ventana de
// convocatoria [FechaApertura, FechaVencimiento].
type Evento struct {
	ID               uuid.UUID `json:"id"`
	Nombre           string    `json:"nombre"`
	Hora             string    `json:"hora"`
	Lugar            string    `json:"lugar"`
	FechaApertura    time.Time `json:"fecha_apertura"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	Activo           bool      `json:"activo"`
	CreatedAt        time.Time `json:"created_at"`
}

func (e *Evento) PartitionKey() string {
	return e.ID.String()
}

// Validar comprueba los invariantes mínimos antes de persistir: nombre no
// vacío y ventana de convocatoria bien formada.
func (e *Evento) Validar() error {
	if strings.TrimSpace(e.Nombre) == "" {
		return fmt.Errorf("%w: nombre vacío", ErrEventoInvalido)
	}
	if e.FechaVencimiento.Before(e.FechaApertura) {
		return fmt.Errorf("%w: la fecha de vencimiento es anterior a la apertura", ErrEventoInvalido)
	}
	return nil
}

// Abierto es el estado derivado "abierto ahora mismo": el evento está
// activo y el instante cae dentro de la ventana de convocatoria.
func (e *Evento) Abierto(ahora time.Time) bool {
	return e.Activo && !ahora.Before(e.FechaApertura) && !ahora.After(e.FechaVencimiento)
}

// EntradaAsistenciaEvento es el hecho inmutable "el usuario X asistió al
// evento Y en el instante T".
type EntradaAsistenciaEvento struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EventoID  uuid.UUID `json:"evento_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *EntradaAsistenciaEvento) PartitionKey() string {
	return e.UserID.String()
}

// RegistroEvento es la vista unida entrada + perfil + evento.
type RegistroEvento struct {
	Entrada EntradaAsistenciaEvento      `json:"entrada"`
	Perfil  *usuarioDomain.PerfilUsuario `json:"perfil"`
	Evento  *Evento                      `json:"evento"`
}

// UnirRegistrosEvento cruza las entradas con perfiles y eventos. Se
// descartan las entradas cuyo usuario o cuyo evento ya no existen.
// Resultado ordenado por fecha descendente.
func UnirRegistrosEvento(entradas []EntradaAsistenciaEvento, perfiles []*usuarioDomain.PerfilUsuario, eventos []*Evento) []RegistroEvento {
	perfilPorID := make(map[uuid.UUID]*usuarioDomain.PerfilUsuario, len(perfiles))
	for _, p := range perfiles {
		perfilPorID[p.ID] = p
	}

	eventoPorID := make(map[uuid.UUID]*Evento, len(eventos))
	for _, e := range eventos {
		eventoPorID[e.ID] = e
	}

	registros := make([]RegistroEvento, 0, len(entradas))
	for _, entrada := range entradas {
		perfil, okPerfil := perfilPorID[entrada.UserID]
		evento, okEvento := eventoPorID[entrada.EventoID]
		if !okPerfil || !okEvento {
			continue
		}
		registros = append(registros, RegistroEvento{Entrada: entrada, Perfil: perfil, Evento: evento})
	}

	sort.SliceStable(registros, func(i, j int) bool {
		return registros[i].Entrada.Timestamp.After(registros[j].Entrada.Timestamp)
	})

	return registros
}

// FiltrarAbiertos devuelve los eventos abiertos en el instante dado.
func FiltrarAbiertos(eventos []*Evento, ahora time.Time) []*Evento {
	var abiertos []*Evento
	for _, e := range eventos {
		if e.Abierto(ahora) {
			abiertos = append(abiertos, e)
		}
	}
	return abiertos
}
