package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const historialSQL = `
	SELECT tipo, id, fecha, estado, resumen, creado_en FROM (
		SELECT 'solicitud' AS tipo, id, fecha_inicio AS fecha, estado, tipo_solicitud AS resumen, creado_en
		FROM solicitudes_permiso WHERE user_cedula = $1
		UNION ALL
		SELECT 'justificacion', id, fecha_inicio, estado, tipo_justificacion, creado_en
		FROM justificaciones WHERE user_cedula = $1
		UNION ALL
		SELECT 'omision', id, fecha_omision, estado, 'Omisión de marca: ' || tipo_omision, creado_en
		FROM omision_marca WHERE user_cedula = $1
		UNION ALL
		SELECT 'reporte_infra', id, NULL::date, estado, tipo_reporte || ': ' || lugar, creado_en
		FROM reporte_infraestructura WHERE user_cedula = $1
	) h
	WHERE $2 = '' OR estado_categoria(estado) = $2
	ORDER BY creado_en DESC, id DESC
	LIMIT $3`

type HistorialRepository struct {
	pool *pgxpool.Pool
}

func NewHistorialRepository(pool *pgxpool.Pool) *HistorialRepository {
	return &HistorialRepository{pool: pool}
}

// ForCedula returns a requester's rows across every kind, newest first.
func (r *HistorialRepository) ForCedula(ctx context.Context, cedula string, q model.HistorialQuery) ([]model.HistorialItem, error) {
	rows, err := r.pool.Query(ctx, historialSQL, cedula, string(q.Estado.Categoria()), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("historial: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.HistorialItem, error) {
		var (
			item model.HistorialItem
			tipo string
		)
		if err := row.Scan(&tipo, &item.ID, &item.Fecha, &item.Estado, &item.Resumen, &item.CreadoEn); err != nil {
			return item, err
		}
		item.Tipo = model.Kind(tipo)
		item.Categoria = model.ClassifyEstado(item.Estado)
		return item, nil
	})
}
