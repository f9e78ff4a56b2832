package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/reporte"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reporteColumns = `id, user_cedula, nombre_suscriptor, posicion, instancia, tipo_reporte, lugar,
	reporte, ` + resolutionColumns + `, creado_en`

func scanReporte(row pgx.CollectableRow) (*reporte.Reporte, error) {
	var rp reporte.Reporte
	dest := []any{
		&rp.ID, &rp.UserCedula, &rp.NombreSuscriptor, &rp.Posicion, &rp.Instancia, &rp.TipoReporte,
		&rp.Lugar, &rp.Reporte,
	}
	dest = append(dest, resolutionDest(&rp.Resolution)...)
	dest = append(dest, &rp.CreadoEn)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &rp, nil
}

type ReporteRepository struct {
	pool  *pgxpool.Pool
	store *requestStore[*reporte.Reporte]
}

func NewReporteRepository(pool *pgxpool.Pool) *ReporteRepository {
	return &ReporteRepository{
		pool: pool,
		store: &requestStore[*reporte.Reporte]{
			pool:          pool,
			table:         model.KindReporteInfra.Table(),
			columns:       reporteColumns,
			scan:          scanReporte,
			searchColumns: []string{"tipo_reporte", "lugar", "reporte", "nombre_suscriptor", "user_cedula"},
		},
	}
}

func (r *ReporteRepository) Create(ctx context.Context, rp *reporte.Reporte) (int64, error) {
	const sql = `
		INSERT INTO reporte_infraestructura (
			user_cedula, nombre_suscriptor, posicion, instancia, estado, tipo_reporte, lugar, reporte
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		rp.UserCedula, rp.NombreSuscriptor, rp.Posicion, rp.Instancia, model.EstadoPendiente,
		rp.TipoReporte, rp.Lugar, rp.Reporte,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert reporte: %w", err)
	}
	return id, nil
}

func (r *ReporteRepository) List(ctx context.Context, q model.ListQuery, cedula string) ([]*reporte.Reporte, int, error) {
	return r.store.list(ctx, q, cedula)
}

func (r *ReporteRepository) Pending(ctx context.Context) ([]*reporte.Reporte, error) {
	return r.store.pending(ctx)
}

func (r *ReporteRepository) Get(ctx context.Context, id int64) (*reporte.Reporte, error) {
	return r.store.get(ctx, id)
}

func (r *ReporteRepository) Resolve(ctx context.Context, id int64, p ResolveParams) (string, error) {
	return r.store.resolve(ctx, id, p)
}
