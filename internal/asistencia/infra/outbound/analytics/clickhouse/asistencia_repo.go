package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// AsistenciaAnalyticsRepo implementa RegistroAnalitico sobre ClickHouse.
type AsistenciaAnalyticsRepo struct {
	db *sql.DB
}

func NewAsistenciaAnalyticsRepo(addr string, dbName string) (*AsistenciaAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &AsistenciaAnalyticsRepo{db: conn}, nil
}

// LogBatch inserta un lote de registros unidos. ClickHouse funciona mejor
// con inserciones en lotes que fila a fila.
func (r *AsistenciaAnalyticsRepo) LogBatch(ctx context.Context, registros []asistenciaDomain.RegistroAsistencia) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO asistencias_log (id, user_id, nombres, genero, estamento, facultad, programa_academico, grupo_cultural, timestamp, event_time)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	eventTime := time.Now()
	for _, registro := range registros {
		if _, err := stmt.ExecContext(
			ctx,
			registro.Entrada.ID,
			registro.Entrada.UserID,
			registro.Perfil.Nombres,
			registro.Perfil.GeneroNormalizado(),
			string(registro.Perfil.Estamento),
			registro.Perfil.Facultad,
			registro.Perfil.ProgramaAcademico,
			registro.Entrada.GrupoCultural,
			registro.Entrada.Timestamp,
			eventTime,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for registro %s: %w", registro.Entrada.ID, err)
		}
	}

	return tx.Commit()
}

// TendenciaMensual consulta el conteo por mes y grupo directamente en el
// sumidero, para reportes históricos sin tocar el almacén primario.
func (r *AsistenciaAnalyticsRepo) TendenciaMensual(ctx context.Context, desde, hasta time.Time) (map[string]map[string]int, error) {
	query := `
		SELECT
			formatDateTime(timestamp, '%Y-%m') AS mes,
			grupo_cultural,
			count() AS total
		FROM asistencias_log
		WHERE timestamp BETWEEN ? AND ?
		GROUP BY mes, grupo_cultural
		ORDER BY mes
	`
	rows, err := r.db.QueryContext(ctx, query, desde, hasta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tendencia := make(map[string]map[string]int)
	for rows.Next() {
		var mes, grupo string
		var total uint64
		if err := rows.Scan(&mes, &grupo, &total); err != nil {
			return nil, err
		}
		if tendencia[mes] == nil {
			tendencia[mes] = make(map[string]int)
		}
		tendencia[mes][grupo] = int(total)
	}

	return tendencia, rows.Err()
}
