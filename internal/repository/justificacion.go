package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/justificacion"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const justificacionColumns = `id, user_cedula, linked_solicitud_id, nombre_suscriptor, posicion, instancia,
	tipo_general, tipo_justificacion, familiar, es_rango, fecha_inicio, fecha_fin, jornada,
	hora_inicio, hora_fin, hora_salida, cantidad, unidad, justificacion_fecha, justificacion_hora,
	observaciones, ` + resolutionColumns + `, creado_en`

func scanJustificacion(row pgx.CollectableRow) (*justificacion.Justificacion, error) {
	var j justificacion.Justificacion
	dest := []any{
		&j.ID, &j.UserCedula, &j.LinkedSolicitudID, &j.NombreSuscriptor, &j.Posicion, &j.Instancia,
		&j.TipoGeneral, &j.TipoJustificacion, &j.Familiar, &j.EsRango, &j.FechaInicio, &j.FechaFin,
		&j.Jornada, &j.HoraInicio, &j.HoraFin, &j.HoraSalida, &j.Cantidad, &j.Unidad,
		&j.JustificacionFecha, &j.JustificacionHora, &j.Observaciones,
	}
	dest = append(dest, resolutionDest(&j.Resolution)...)
	dest = append(dest, &j.CreadoEn)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &j, nil
}

type JustificacionRepository struct {
	pool        *pgxpool.Pool
	store       *requestStore[*justificacion.Justificacion]
	attachments *attachmentStore
}

func NewJustificacionRepository(pool *pgxpool.Pool) *JustificacionRepository {
	return &JustificacionRepository{
		pool: pool,
		store: &requestStore[*justificacion.Justificacion]{
			pool:    pool,
			table:   model.KindJustificacion.Table(),
			columns: justificacionColumns,
			scan:    scanJustificacion,
			searchColumns: []string{
				"tipo_justificacion", "tipo_general", "nombre_suscriptor", "user_cedula",
				"fecha_inicio::text", "fecha_fin::text",
			},
		},
		attachments: &attachmentStore{pool: pool, table: "justificacion_adjuntos", fk: "justificacion_id"},
	}
}

func (r *JustificacionRepository) Create(ctx context.Context, j *justificacion.Justificacion) (int64, error) {
	const sql = `
		INSERT INTO justificaciones (
			user_cedula, linked_solicitud_id, nombre_suscriptor, posicion, instancia, estado,
			tipo_general, tipo_justificacion, familiar, es_rango, fecha_inicio, fecha_fin,
			jornada, hora_inicio, hora_fin, hora_salida, cantidad, unidad,
			justificacion_fecha, justificacion_hora, observaciones
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		j.UserCedula, j.LinkedSolicitudID, j.NombreSuscriptor, j.Posicion, j.Instancia, model.EstadoPendiente,
		j.TipoGeneral, j.TipoJustificacion, j.Familiar, j.EsRango, j.FechaInicio, j.FechaFin,
		j.Jornada, j.HoraInicio, j.HoraFin, j.HoraSalida, j.Cantidad, j.Unidad,
		j.JustificacionFecha, j.JustificacionHora, j.Observaciones,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert justificacion: %w", err)
	}
	return id, nil
}

func (r *JustificacionRepository) AddAttachment(ctx context.Context, id int64, in model.AttachmentInput, uploadedBy string) error {
	return r.attachments.add(ctx, id, in, uploadedBy)
}

func (r *JustificacionRepository) Attachments(ctx context.Context, id int64) ([]model.Attachment, error) {
	return r.attachments.list(ctx, id)
}

func (r *JustificacionRepository) List(ctx context.Context, q model.ListQuery, cedula string) ([]*justificacion.Justificacion, int, error) {
	return r.store.list(ctx, q, cedula)
}

func (r *JustificacionRepository) Pending(ctx context.Context) ([]*justificacion.Justificacion, error) {
	return r.store.pending(ctx)
}

func (r *JustificacionRepository) Get(ctx context.Context, id int64) (*justificacion.Justificacion, error) {
	return r.store.get(ctx, id)
}

func (r *JustificacionRepository) Resolve(ctx context.Context, id int64, p ResolveParams) (string, error) {
	return r.store.resolve(ctx, id, p)
}
