package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
)

// EspejoSQLite guarda la última vista unida conocida en una base local,
// para degradar lecturas cuando el almacén primario no responde. Es el
// equivalente del respaldo local del cliente original.
type EspejoSQLite struct {
	db *sql.DB
}

func NewEspejoSQLite(db *sql.DB) *EspejoSQLite {
	return &EspejoSQLite{db: db}
}

// InitEsquema crea la tabla si no existe. Cada fila es un registro unido
// serializado: el espejo solo necesita reproducir la vista, no consultarla.
func (r *EspejoSQLite) InitEsquema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS registros_espejo (
			id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`)
	return err
}

// Reemplazar sustituye la copia local completa por los registros dados.
func (r *EspejoSQLite) Reemplazar(ctx context.Context, registros []asistenciaDomain.RegistroAsistencia) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM registros_espejo`); err != nil {
		return err
	}

	for _, registro := range registros {
		payload, err := json.Marshal(registro)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO registros_espejo (id, payload, timestamp) VALUES (?,?,?)`,
			registro.Entrada.ID.String(), string(payload), registro.Entrada.Timestamp,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Cargar devuelve la copia local; ErrSinEspejoLocal si nunca se escribió.
func (r *EspejoSQLite) Cargar(ctx context.Context) ([]asistenciaDomain.RegistroAsistencia, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM registros_espejo ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registros []asistenciaDomain.RegistroAsistencia
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var registro asistenciaDomain.RegistroAsistencia
		if err := json.Unmarshal([]byte(payload), &registro); err != nil {
			return nil, err
		}
		registros = append(registros, registro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(registros) == 0 {
		return nil, asistenciaDomain.ErrSinEspejoLocal
	}

	return registros, nil
}
