package domain

import (
	"time"

	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"
)

const (
	AdminTopic = "admin-events"

	AdminCreado       = "admin.creado"
	EncargadoAsignado = "admin.encargado_asignado"
	EncargadoRemovido = "admin.encargado_removido"
	CategoriaAsignada = "admin.categoria_asignada"
	CategoriaRetirada = "admin.categoria_retirada"
)

// UsuarioAdmin es una persona habilitada para el panel de administración,
// identificada por su par (documento, correo).
type UsuarioAdmin struct {
	ID              uuid.UUID `json:"id"`
	NumeroDocumento string    `json:"numero_documento"`
	Correo          string    `json:"correo"`
	Nombres         string    `json:"nombres"`
	CreatedAt       time.Time `json:"created_at"`
	CreadoPor       string    `json:"creado_por"`
}

func (a *UsuarioAdmin) PartitionKey() string {
	return a.ID.String()
}

// EncargadoGrupo es la asignación de un usuario como encargado de un grupo
// cultural. La remoción es lógica: se marca Removido sin borrar el registro.
type EncargadoGrupo struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	GrupoCultural string     `json:"grupo_cultural"`
	AsignadoEn    time.Time  `json:"asignado_en"`
	AsignadoPor   string     `json:"asignado_por"`
	Removido      bool       `json:"removido"`
	RemovidoEn    *time.Time `json:"removido_en,omitempty"`
}

// EncargadoConPerfil es la vista unida asignación + perfil del encargado.
type EncargadoConPerfil struct {
	Encargado EncargadoGrupo               `json:"encargado"`
	Perfil    *usuarioDomain.PerfilUsuario `json:"perfil"`
}

// CategoriaGrupo clasifica a los integrantes dentro de un grupo cultural.
type CategoriaGrupo string

const (
	CategoriaSemillero      CategoriaGrupo = "SEMILLERO"
	CategoriaProceso        CategoriaGrupo = "PROCESO"
	CategoriaRepresentativo CategoriaGrupo = "REPRESENTATIVO"
)

// EsValida indica si la categoría pertenece al enum.
func (c CategoriaGrupo) EsValida() bool {
	switch c {
	case CategoriaSemillero, CategoriaProceso, CategoriaRepresentativo:
		return true
	}
	return false
}

// AsignacionCategoria vincula a un usuario con una categoría dentro de un
// grupo. Un usuario tiene a lo sumo una categoría por grupo.
type AsignacionCategoria struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	GrupoCultural string         `json:"grupo_cultural"`
	Categoria     CategoriaGrupo `json:"categoria"`
	AsignadoEn    time.Time      `json:"asignado_en"`
}

// Credenciales es el par fijo del super admin.
type Credenciales struct {
	Usuario  string
	Password string
}

// Sesion es el contexto de autorización resuelto una sola vez en la
// frontera HTTP e inyectado en cada petición.
type Sesion struct {
	Rol    usuarioDomain.Rol `json:"rol"`
	UserID uuid.UUID         `json:"user_id"`
	Grupo  string            `json:"grupo,omitempty"`
}
