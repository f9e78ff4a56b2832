package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const solicitudColumns = `id, user_cedula, nombre_solicitante, posicion, instancia, tipo_general,
	tipo_solicitud, familiar, es_rango, fecha_inicio, fecha_fin, jornada, hora_inicio, hora_fin,
	hora_compact, hora_salida, cantidad, unidad, observaciones, adjunto_url, adjunto_mime, ` +
	resolutionColumns + `, creado_en`

func scanSolicitud(row pgx.CollectableRow) (*solicitud.Solicitud, error) {
	var s solicitud.Solicitud
	dest := []any{
		&s.ID, &s.UserCedula, &s.NombreSolicitante, &s.Posicion, &s.Instancia, &s.TipoGeneral,
		&s.TipoSolicitud, &s.Familiar, &s.EsRango, &s.FechaInicio, &s.FechaFin, &s.Jornada,
		&s.HoraInicio, &s.HoraFin, &s.HoraCompact, &s.HoraSalida, &s.Cantidad, &s.Unidad,
		&s.Observaciones, &s.AdjuntoURL, &s.AdjuntoMime,
	}
	dest = append(dest, resolutionDest(&s.Resolution)...)
	dest = append(dest, &s.CreadoEn)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

type SolicitudRepository struct {
	pool        *pgxpool.Pool
	store       *requestStore[*solicitud.Solicitud]
	attachments *attachmentStore
}

func NewSolicitudRepository(pool *pgxpool.Pool) *SolicitudRepository {
	return &SolicitudRepository{
		pool: pool,
		store: &requestStore[*solicitud.Solicitud]{
			pool:    pool,
			table:   model.KindSolicitud.Table(),
			columns: solicitudColumns,
			scan:    scanSolicitud,
			searchColumns: []string{
				"tipo_solicitud", "tipo_general", "nombre_solicitante", "user_cedula",
				"fecha_inicio::text", "fecha_fin::text",
			},
		},
		attachments: &attachmentStore{pool: pool, table: "solicitud_adjuntos", fk: "solicitud_id"},
	}
}

func (r *SolicitudRepository) Create(ctx context.Context, s *solicitud.Solicitud) (int64, error) {
	const sql = `
		INSERT INTO solicitudes_permiso (
			user_cedula, nombre_solicitante, posicion, instancia, estado, tipo_general,
			tipo_solicitud, familiar, es_rango, fecha_inicio, fecha_fin, jornada,
			hora_inicio, hora_fin, hora_compact, hora_salida, cantidad, unidad,
			observaciones, adjunto_url, adjunto_mime
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		s.UserCedula, s.NombreSolicitante, s.Posicion, s.Instancia, model.EstadoPendiente, s.TipoGeneral,
		s.TipoSolicitud, s.Familiar, s.EsRango, s.FechaInicio, s.FechaFin, s.Jornada,
		s.HoraInicio, s.HoraFin, s.HoraCompact, s.HoraSalida, s.Cantidad, s.Unidad,
		s.Observaciones, s.AdjuntoURL, s.AdjuntoMime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert solicitud: %w", err)
	}
	return id, nil
}

func (r *SolicitudRepository) AddAttachment(ctx context.Context, id int64, in model.AttachmentInput, uploadedBy string) error {
	return r.attachments.add(ctx, id, in, uploadedBy)
}

func (r *SolicitudRepository) Attachments(ctx context.Context, id int64) ([]model.Attachment, error) {
	return r.attachments.list(ctx, id)
}

func (r *SolicitudRepository) List(ctx context.Context, q model.ListQuery, cedula string) ([]*solicitud.Solicitud, int, error) {
	return r.store.list(ctx, q, cedula)
}

func (r *SolicitudRepository) Pending(ctx context.Context) ([]*solicitud.Solicitud, error) {
	return r.store.pending(ctx)
}

func (r *SolicitudRepository) Get(ctx context.Context, id int64) (*solicitud.Solicitud, error) {
	return r.store.get(ctx, id)
}

func (r *SolicitudRepository) Resolve(ctx context.Context, id int64, p ResolveParams) (string, error) {
	return r.store.resolve(ctx, id, p)
}
