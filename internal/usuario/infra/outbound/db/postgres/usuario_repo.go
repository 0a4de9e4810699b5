package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// UsuarioRepoPostgres implementa UsuarioRepository sobre PostgreSQL, como
// backend alternativo al almacén de documentos.
type UsuarioRepoPostgres struct {
	db *sql.DB
}

func NewUsuarioRepoPostgres(db *sql.DB) *UsuarioRepoPostgres {
	return &UsuarioRepoPostgres{db: db}
}

// ------------------ Helper DRY para insertar en outbox ------------------

func insertOutboxTx(ctx context.Context, tx *sql.Tx, evt sharedDomain.OutboxEvent) error {
	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at, processed)
		 VALUES ($1, $2, $3, $4, $5, $6, false)`,
		evt.ID, evt.AggregateType, evt.AggregateID, evt.EventType, payloadBytes, evt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// ------------------ CRUD + Outbox ------------------

func (r *UsuarioRepoPostgres) Create(ctx context.Context, u *usuarioDomain.PerfilUsuario, evt sharedDomain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_profiles
		 (id, nombres, correo, tipo_documento, numero_documento, telefono, edad, genero, etnia, sede,
		  estamento, codigo_estudiante, facultad, programa_academico, rol, created_at, last_attendance)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		u.ID, u.Nombres, u.Correo, u.TipoDocumento, u.NumeroDocumento, u.Telefono, u.Edad,
		string(u.Genero), u.Etnia, u.Sede, string(u.Estamento), u.CodigoEstudiante, u.Facultad,
		u.ProgramaAcademico, string(u.Rol), u.CreatedAt, u.UltimaAsistencia,
	)
	if err != nil {
		return err
	}

	if err = insertOutboxTx(ctx, tx, evt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UsuarioRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*usuarioDomain.PerfilUsuario, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, nombres, correo, tipo_documento, numero_documento, telefono, edad, genero, etnia, sede,
		        estamento, codigo_estudiante, facultad, programa_academico, rol, created_at, last_attendance
		 FROM user_profiles WHERE id = $1`, id)

	perfil, err := scanPerfil(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usuarioDomain.ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return perfil, nil
}

func (r *UsuarioRepoPostgres) List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nombres, correo, tipo_documento, numero_documento, telefono, edad, genero, etnia, sede,
		        estamento, codigo_estudiante, facultad, programa_academico, rol, created_at, last_attendance
		 FROM user_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perfiles []*usuarioDomain.PerfilUsuario
	for rows.Next() {
		perfil, err := scanPerfil(rows)
		if err != nil {
			return nil, err
		}
		perfiles = append(perfiles, perfil)
	}

	return perfiles, rows.Err()
}

func (r *UsuarioRepoPostgres) ActualizarRol(ctx context.Context, id uuid.UUID, rol usuarioDomain.Rol) error {
	res, err := r.db.ExecContext(ctx, `UPDATE user_profiles SET rol = $1 WHERE id = $2`, string(rol), id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	return nil
}

func (r *UsuarioRepoPostgres) ActualizarUltimaAsistencia(ctx context.Context, id uuid.UUID, t time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE user_profiles SET last_attendance = $1 WHERE id = $2`, t, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	return nil
}

func (r *UsuarioRepoPostgres) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		err = usuarioDomain.ErrUsuarioNoEncontrado
		return err
	}

	if err = insertOutboxTx(ctx, tx, evt); err != nil {
		return err
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPerfil(s scanner) (*usuarioDomain.PerfilUsuario, error) {
	var u usuarioDomain.PerfilUsuario
	var genero, estamento, rol string

	err := s.Scan(
		&u.ID, &u.Nombres, &u.Correo, &u.TipoDocumento, &u.NumeroDocumento, &u.Telefono, &u.Edad,
		&genero, &u.Etnia, &u.Sede, &estamento, &u.CodigoEstudiante, &u.Facultad,
		&u.ProgramaAcademico, &rol, &u.CreatedAt, &u.UltimaAsistencia,
	)
	if err != nil {
		return nil, err
	}

	u.Genero = usuarioDomain.Genero(genero)
	u.Estamento = usuarioDomain.Estamento(estamento)
	u.Rol = usuarioDomain.Rol(rol)
	return &u, nil
}
