package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type SolicitudService struct {
	repo     *repository.SolicitudRepository
	clock    *Clock
	resolver *Resolver
	reports  *Reports
	access   access
}

func NewSolicitudService(repo *repository.SolicitudRepository, clock *Clock, resolver *Resolver, reports *Reports) *SolicitudService {
	return &SolicitudService{
		repo:     repo,
		clock:    clock,
		resolver: resolver,
		reports:  reports,
		access:   newAccess(user.PersonnelManagers),
	}
}

// buildSolicitud applies every creation rule against today.
func buildSolicitud(today time.Time, su *user.SessionUser, req *solicitud.CreateSolicitudRequest) (*solicitud.Solicitud, error) {
	var fin *time.Time
	if req.FechaFin != nil {
		fin = &req.FechaFin.Time
	}

	end, err := checkSolicitudDates(today, req.FechaInicio.Time, fin, req.EsRango)
	if err != nil {
		return nil, err
	}

	sc, err := resolveSchedule(req.TipoGeneral, req.Jornada, req.HoraInicio, req.HoraFin, req.HoraSalida)
	if err != nil {
		return nil, err
	}

	m, err := resolveMotive("tipo_solicitud", req.TipoSolicitud, req.Familiar, req.HasAttachment(),
		model.MotivoMedicosPersonales, model.MotivoConvocatoria)
	if err != nil {
		return nil, err
	}

	posicion := userPosicion(su)
	cantidad, unidad, err := resolveCantidad(req.Cantidad, req.Unidad, posicion)
	if err != nil {
		return nil, err
	}

	nombre := su.User.FullName()

	return &solicitud.Solicitud{
		UserCedula:        su.User.Cedula,
		NombreSolicitante: &nombre,
		Posicion:          su.User.Posicion,
		Instancia:         su.User.Instancia,
		TipoGeneral:       sc.TipoGeneral,
		TipoSolicitud:     m.Motivo,
		Familiar:          m.Familiar,
		EsRango:           req.EsRango,
		FechaInicio:       model.NewDate(req.FechaInicio.Time),
		FechaFin:          model.NewDate(end),
		Jornada:           &sc.Jornada,
		HoraInicio:        sc.HoraInicio,
		HoraFin:           sc.HoraFin,
		HoraCompact:       &sc.HoraCompact,
		HoraSalida:        sc.HoraSalida,
		Cantidad:          cantidad,
		Unidad:            &unidad,
		Observaciones:     trimmed(req.Observaciones),
		AdjuntoURL:        firstRef(req.AttachmentInput),
		AdjuntoMime:       trimmed(req.AdjuntoMime),
	}, nil
}

func (s *SolicitudService) Create(ctx context.Context, su *user.SessionUser, req *solicitud.CreateSolicitudRequest) (*model.Created, error) {
	row, err := buildSolicitud(s.clock.Today(ctx), su, req)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	if req.HasAttachment() {
		if err := s.repo.AddAttachment(ctx, id, req.AttachmentInput, su.User.Cedula); err != nil {
			log.Error().Err(err).Int64("solicitud_id", id).Msg("failed to store attachment row")
		}
	}

	log.Info().Int64("solicitud_id", id).Str("motivo", row.TipoSolicitud).Msg("solicitud created")

	return &model.Created{OK: true, ID: id}, nil
}

func (s *SolicitudService) List(ctx context.Context, su *user.SessionUser, q *model.ListQuery) (*model.PaginatedResponse[*solicitud.Solicitud], error) {
	q.Normalize()

	items, total, err := s.repo.List(ctx, *q, s.access.listScope(su))
	if err != nil {
		return nil, err
	}

	return &model.PaginatedResponse[*solicitud.Solicitud]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *SolicitudService) Pending(ctx context.Context, su *user.SessionUser) (*model.ListResponse[*solicitud.Solicitud], error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}

	items, err := s.repo.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ListResponse[*solicitud.Solicitud]{Items: items}, nil
}

func (s *SolicitudService) get(ctx context.Context, id int64) (*solicitud.Solicitud, error) {
	row, err := s.repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound()
	}
	return row, err
}

func (s *SolicitudService) Get(ctx context.Context, su *user.SessionUser, id int64) (*solicitud.Detail, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.access.canRead(su, row.UserCedula) {
		return nil, errNoAccess()
	}

	adjuntos, err := s.repo.Attachments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &solicitud.Detail{Solicitud: row, Adjuntos: adjuntos}, nil
}

func (s *SolicitudService) Respond(ctx context.Context, su *user.SessionUser, req *model.RespondRequest) (*model.OK, error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}
	return s.resolver.resolve(ctx, su, model.KindSolicitud, solicitud.Decisiones, req, s.repo.Resolve)
}

func (s *SolicitudService) PDF(ctx context.Context, su *user.SessionUser, id int64) (*model.File, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.access.canDownload(su, row.UserCedula) {
		return nil, errNoAccess()
	}

	adjuntos, err := s.repo.Attachments(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.reports.Solicitud(row, adjuntos)
}
