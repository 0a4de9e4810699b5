package domain

import (
	"fmt"
	"strings"
	"time"

	sharedBus "github.com/davicafu/asistencia-cultural/internal/shared/platform/bus"
	"github.com/google/uuid"
)

// ---------------- Enumeraciones del dominio ----------------

type Genero string

const (
	GeneroMujer  Genero = "MUJER"
	GeneroHombre Genero = "HOMBRE"
	GeneroOtro   Genero = "OTRO"
)

type Estamento string

const (
	EstamentoEstudiante         Estamento = "ESTUDIANTE"
	EstamentoEgresado           Estamento = "EGRESADO"
	EstamentoDocente            Estamento = "DOCENTE"
	EstamentoDocenteHoraCatedra Estamento = "DOCENTE HORA CATEDRA"
	EstamentoFuncionario        Estamento = "FUNCIONARIO"
	EstamentoContratista        Estamento = "CONTRATISTA"
	EstamentoInvitado           Estamento = "INVITADO"
)

type Rol string

const (
	RolEstudiante Rol = "ESTUDIANTE"
	RolDirector   Rol = "DIRECTOR"
	RolMonitor    Rol = "MONITOR"
)

// ---------------- Eventos ----------------

const (
	UsuarioTopic = "usuario-events"

	UsuarioCreado    = "usuario.creado"
	UsuarioEliminado = "usuario.eliminado"
	RolActualizado   = "usuario.rol_actualizado"
)

// ---------------- Entidad ----------------

// PerfilUsuario representa a una persona conocida por el sistema. Se crea una
// sola vez en su primer registro; UltimaAsistencia se actualiza con cada
// asistencia guardada.
type PerfilUsuario struct {
	ID              uuid.UUID `json:"id"`
	Nombres         string    `json:"nombres"`
	Correo          string    `json:"correo"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	Telefono        string    `json:"telefono"`
	Edad            int       `json:"edad"`
	Genero          Genero    `json:"genero"`
	Etnia           string    `json:"etnia"`
	Sede            string    `json:"sede"`
	Estamento       Estamento `json:"estamento"`

	// Campos condicionales: solo cuando el estamento los requiere.
	CodigoEstudiante  string `json:"codigo_estudiante,omitempty"`
	Facultad          string `json:"facultad,omitempty"`
	ProgramaAcademico string `json:"programa_academico,omitempty"`

	Rol Rol `json:"rol,omitempty"`

	CreatedAt        time.Time `json:"created_at"`
	UltimaAsistencia time.Time `json:"ultima_asistencia"`
}

func (u *PerfilUsuario) PartitionKey() string {
	return u.ID.String()
}

// RequiereCamposAcademicos indica si el estamento obliga a diligenciar
// código, facultad y programa académico.
func (u *PerfilUsuario) RequiereCamposAcademicos() bool {
	return u.Estamento == EstamentoEstudiante || u.Estamento == EstamentoEgresado
}

// EsEncargado indica si el rol habilita al usuario para gestionar un grupo.
func (u *PerfilUsuario) EsEncargado() bool {
	return u.Rol == RolDirector || u.Rol == RolMonitor
}

// GeneroNormalizado devuelve el género en minúsculas, la forma que usan
// las estadísticas ("mujer", "hombre", "otro").
func (u *PerfilUsuario) GeneroNormalizado() string {
	return strings.ToLower(string(u.Genero))
}

// Validar comprueba los invariantes del perfil antes de persistirlo:
// género dentro del enum y campos académicos presentes solo si el
// estamento los requiere.
func (u *PerfilUsuario) Validar() error {
	if strings.TrimSpace(u.Nombres) == "" {
		return fmt.Errorf("%w: nombres vacíos", ErrPerfilInvalido)
	}
	if strings.TrimSpace(u.NumeroDocumento) == "" {
		return fmt.Errorf("%w: número de documento vacío", ErrPerfilInvalido)
	}

	switch u.Genero {
	case GeneroMujer, GeneroHombre, GeneroOtro:
	default:
		return fmt.Errorf("%w: género desconocido %q", ErrPerfilInvalido, u.Genero)
	}

	tieneAcademicos := u.CodigoEstudiante != "" || u.Facultad != "" || u.ProgramaAcademico != ""
	if u.RequiereCamposAcademicos() {
		if u.CodigoEstudiante == "" || u.Facultad == "" || u.ProgramaAcademico == "" {
			return fmt.Errorf("%w: estamento %s exige código, facultad y programa", ErrPerfilInvalido, u.Estamento)
		}
	} else if tieneAcademicos {
		return fmt.Errorf("%w: estamento %s no admite campos académicos", ErrPerfilInvalido, u.Estamento)
	}

	return nil
}

// CacheKeyPerfil forma una key consistente para cache usando ID.
func CacheKeyPerfil(id uuid.UUID) string {
	return fmt.Sprintf("perfil:id:%s", id.String())
}

// Verificación estática para asegurar que PerfilUsuario implementa la interfaz
var _ sharedBus.Keyer = (*PerfilUsuario)(nil)
