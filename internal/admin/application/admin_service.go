package application

import (
	"context"
	"strings"
	"time"

	"github.com/davicafu/asistencia-cultural/internal/admin/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PerfilProveedor es lo que este contexto necesita del contexto de usuario.
type PerfilProveedor interface {
	List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error)
	GetByID(ctx context.Context, id uuid.UUID) (*usuarioDomain.PerfilUsuario, error)
}

// AdminService define los casos de uso del panel de administración:
// credenciales, administradores, encargados de grupo y categorías.
type AdminService struct {
	superAdmin domain.Credenciales
	admins     domain.AdminRepository
	encargados domain.EncargadoRepository
	categorias domain.CategoriaRepository
	perfiles   PerfilProveedor
	log        *zap.Logger
}

func NewAdminService(
	superAdmin domain.Credenciales,
	admins domain.AdminRepository,
	encargados domain.EncargadoRepository,
	categorias domain.CategoriaRepository,
	perfiles PerfilProveedor,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		superAdmin: superAdmin,
		admins:     admins,
		encargados: encargados,
		categorias: categorias,
		perfiles:   perfiles,
		log:        log,
	}
}

// VerificarSuperAdmin compara contra el par fijo de configuración.
func (s *AdminService) VerificarSuperAdmin(usuario, password string) bool {
	return usuario == s.superAdmin.Usuario && password == s.superAdmin.Password
}

// CrearAdmin registra un nuevo usuario del panel de administración.
func (s *AdminService) CrearAdmin(ctx context.Context, documento, correo, nombres, creadoPor string) (*domain.UsuarioAdmin, error) {
	ahora := time.Now().UTC()
	admin := &domain.UsuarioAdmin{
		ID:              uuid.New(),
		NumeroDocumento: documento,
		Correo:          correo,
		Nombres:         nombres,
		CreatedAt:       ahora,
		CreadoPor:       creadoPor,
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "admin",
		AggregateID:   admin.ID.String(),
		EventType:     domain.AdminCreado,
		Payload:       admin,
		CreatedAt:     ahora,
	}

	if err := s.admins.Create(ctx, admin, evt); err != nil {
		return nil, err
	}

	return admin, nil
}

// VerificarAdmin busca al administrador por su par (documento, correo).
func (s *AdminService) VerificarAdmin(ctx context.Context, documento, correo string) (*domain.UsuarioAdmin, error) {
	return s.admins.Buscar(ctx, documento, correo)
}

// ListarAdmins devuelve todos los administradores.
func (s *AdminService) ListarAdmins(ctx context.Context) ([]*domain.UsuarioAdmin, error) {
	return s.admins.List(ctx)
}

// AsignarEncargado asigna al usuario como encargado del grupo. Exige rol
// DIRECTOR o MONITOR y que el usuario no esté ya encargado de otro grupo;
// en ese caso falla sin mutar nada.
func (s *AdminService) AsignarEncargado(ctx context.Context, userID uuid.UUID, grupo, asignadoPor string) (*domain.EncargadoGrupo, error) {
	perfil, err := s.perfiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !perfil.EsEncargado() {
		return nil, domain.ErrRolInsuficiente
	}

	if _, err := s.encargados.AsignacionActiva(ctx, userID); err == nil {
		return nil, domain.ErrEncargadoDuplicado
	} else if err != domain.ErrEncargadoNoEncontrado {
		return nil, err
	}

	ahora := time.Now().UTC()
	encargado := &domain.EncargadoGrupo{
		ID:            uuid.New(),
		UserID:        userID,
		GrupoCultural: grupo,
		AsignadoEn:    ahora,
		AsignadoPor:   asignadoPor,
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "admin",
		AggregateID:   encargado.ID.String(),
		EventType:     domain.EncargadoAsignado,
		Payload:       encargado,
		CreatedAt:     ahora,
	}

	if err := s.encargados.Create(ctx, encargado, evt); err != nil {
		return nil, err
	}

	return encargado, nil
}

// EncargadosDeGrupo devuelve los encargados vigentes del grupo junto a sus
// perfiles. Las asignaciones cuyo usuario ya no existe se descartan.
func (s *AdminService) EncargadosDeGrupo(ctx context.Context, grupo string) ([]domain.EncargadoConPerfil, error) {
	asignaciones, err := s.encargados.ListPorGrupo(ctx, grupo)
	if err != nil {
		return nil, err
	}

	resultado := make([]domain.EncargadoConPerfil, 0, len(asignaciones))
	for _, a := range asignaciones {
		perfil, err := s.perfiles.GetByID(ctx, a.UserID)
		if err != nil {
			if err == usuarioDomain.ErrUsuarioNoEncontrado {
				continue
			}
			return nil, err
		}
		resultado = append(resultado, domain.EncargadoConPerfil{Encargado: a, Perfil: perfil})
	}

	return resultado, nil
}

// VerificarEncargado resuelve el perfil por (documento, correo), comprueba
// su rol y busca su asignación vigente. Devuelve el perfil y el grupo.
func (s *AdminService) VerificarEncargado(ctx context.Context, documento, correo string) (*usuarioDomain.PerfilUsuario, string, error) {
	perfiles, err := s.perfiles.List(ctx)
	if err != nil {
		return nil, "", err
	}

	var perfil *usuarioDomain.PerfilUsuario
	for _, p := range perfiles {
		if p.NumeroDocumento == documento && strings.EqualFold(p.Correo, correo) {
			perfil = p
			break
		}
	}
	if perfil == nil {
		return nil, "", usuarioDomain.ErrUsuarioNoEncontrado
	}

	if !perfil.EsEncargado() {
		return nil, "", domain.ErrRolInsuficiente
	}

	asignacion, err := s.encargados.AsignacionActiva(ctx, perfil.ID)
	if err != nil {
		return nil, "", err
	}

	return perfil, asignacion.GrupoCultural, nil
}

// RemoverEncargado marca la asignación como removida (remoción lógica).
func (s *AdminService) RemoverEncargado(ctx context.Context, encargadoID uuid.UUID) error {
	ahora := time.Now().UTC()

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "admin",
		AggregateID:   encargadoID.String(),
		EventType:     domain.EncargadoRemovido,
		Payload:       encargadoID,
		CreatedAt:     ahora,
	}

	return s.encargados.Remover(ctx, encargadoID, ahora, evt)
}

// AsignarCategoria coloca a cada usuario en la categoría dentro del grupo,
// reemplazando cualquier asignación anterior del mismo (usuario, grupo).
func (s *AdminService) AsignarCategoria(ctx context.Context, userIDs []uuid.UUID, grupo string, categoria domain.CategoriaGrupo) error {
	if !categoria.EsValida() {
		return domain.ErrCategoriaInvalida
	}

	ahora := time.Now().UTC()
	for _, userID := range userIDs {
		asignacion := &domain.AsignacionCategoria{
			ID:            uuid.New(),
			UserID:        userID,
			GrupoCultural: grupo,
			Categoria:     categoria,
			AsignadoEn:    ahora,
		}

		evt := sharedDomain.OutboxEvent{
			ID:            uuid.New(),
			AggregateType: "admin",
			AggregateID:   asignacion.ID.String(),
			EventType:     domain.CategoriaAsignada,
			Payload:       asignacion,
			CreatedAt:     ahora,
		}

		if err := s.categorias.Reemplazar(ctx, asignacion, evt); err != nil {
			return err
		}
	}

	return nil
}

// UsuariosPorCategoria devuelve las asignaciones de una categoría en un grupo.
func (s *AdminService) UsuariosPorCategoria(ctx context.Context, grupo string, categoria domain.CategoriaGrupo) ([]domain.AsignacionCategoria, error) {
	if !categoria.EsValida() {
		return nil, domain.ErrCategoriaInvalida
	}
	return s.categorias.ListPorCategoria(ctx, grupo, categoria)
}

// CategoriaDeUsuario devuelve la categoría del usuario en el grupo.
func (s *AdminService) CategoriaDeUsuario(ctx context.Context, userID uuid.UUID, grupo string) (domain.CategoriaGrupo, error) {
	return s.categorias.CategoriaDe(ctx, userID, grupo)
}

// RemoverDeCategorias saca al usuario de todas las categorías del grupo.
func (s *AdminService) RemoverDeCategorias(ctx context.Context, userID uuid.UUID, grupo string) error {
	return s.categorias.RemoverDeCategorias(ctx, userID, grupo)
}
