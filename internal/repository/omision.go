package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const omisionColumns = `id, user_cedula, nombre_suscriptor, posicion, instancia, fecha_omision,
	tipo_omision, justificacion, ` + resolutionColumns + `, creado_en`

func scanOmision(row pgx.CollectableRow) (*omision.Omision, error) {
	var o omision.Omision
	dest := []any{
		&o.ID, &o.UserCedula, &o.NombreSuscriptor, &o.Posicion, &o.Instancia, &o.FechaOmision,
		&o.TipoOmision, &o.Justificacion,
	}
	dest = append(dest, resolutionDest(&o.Resolution)...)
	dest = append(dest, &o.CreadoEn)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

type OmisionRepository struct {
	pool  *pgxpool.Pool
	store *requestStore[*omision.Omision]
}

func NewOmisionRepository(pool *pgxpool.Pool) *OmisionRepository {
	return &OmisionRepository{
		pool: pool,
		store: &requestStore[*omision.Omision]{
			pool:    pool,
			table:   model.KindOmision.Table(),
			columns: omisionColumns,
			scan:    scanOmision,
			searchColumns: []string{
				"tipo_omision", "justificacion", "nombre_suscriptor", "user_cedula", "fecha_omision::text",
			},
		},
	}
}

func (r *OmisionRepository) Create(ctx context.Context, o *omision.Omision) (int64, error) {
	const sql = `
		INSERT INTO omision_marca (
			user_cedula, nombre_suscriptor, posicion, instancia, estado, fecha_omision, tipo_omision, justificacion
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		o.UserCedula, o.NombreSuscriptor, o.Posicion, o.Instancia, model.EstadoPendiente,
		o.FechaOmision, o.TipoOmision, o.Justificacion,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert omision: %w", err)
	}
	return id, nil
}

func (r *OmisionRepository) List(ctx context.Context, q model.ListQuery, cedula string) ([]*omision.Omision, int, error) {
	return r.store.list(ctx, q, cedula)
}

func (r *OmisionRepository) Pending(ctx context.Context) ([]*omision.Omision, error) {
	return r.store.pending(ctx)
}

func (r *OmisionRepository) Get(ctx context.Context, id int64) (*omision.Omision, error) {
	return r.store.get(ctx, id)
}

func (r *OmisionRepository) Resolve(ctx context.Context, id int64, p ResolveParams) (string, error) {
	return r.store.resolve(ctx, id, p)
}
