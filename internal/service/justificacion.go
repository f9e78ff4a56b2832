package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/workday"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/justificacion"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type JustificacionService struct {
	repo        *repository.JustificacionRepository
	solicitudes *repository.SolicitudRepository
	clock       *Clock
	resolver    *Resolver
	reports     *Reports
	access      access
}

func NewJustificacionService(
	repo *repository.JustificacionRepository,
	solicitudes *repository.SolicitudRepository,
	clock *Clock,
	resolver *Resolver,
	reports *Reports,
) *JustificacionService {
	return &JustificacionService{
		repo:        repo,
		solicitudes: solicitudes,
		clock:       clock,
		resolver:    resolver,
		reports:     reports,
		access:      newAccess(user.PersonnelManagers),
	}
}

// checkLinkedSolicitud verifies ownership of the linked solicitud and that
// its last day is inside the justification window.
func checkLinkedSolicitud(today time.Time, su *user.SessionUser, linked *solicitud.Solicitud) error {
	if !su.Owns(linked.UserCedula) {
		return errs.NewForbiddenError("La solicitud vinculada no te pertenece", false)
	}

	last := linked.FechaInicio.Time
	if linked.EsRango && !linked.FechaFin.IsZero() {
		last = linked.FechaFin.Time
	}
	if !workday.InJustificationWindow(last, today) {
		return errs.BadRequestField("linked_solicitud_id", windowMessage(today))
	}
	return nil
}

func buildJustificacion(today time.Time, su *user.SessionUser, req *justificacion.CreateJustificacionRequest) (*justificacion.Justificacion, error) {
	var fin *time.Time
	if req.FechaFin != nil {
		fin = &req.FechaFin.Time
	}

	end, err := checkJustificacionDates(today, req.FechaInicio.Time, fin, req.EsRango)
	if err != nil {
		return nil, err
	}

	sc, err := resolveSchedule(req.TipoGeneral, req.Jornada, req.HoraInicio, req.HoraFin, req.HoraSalida)
	if err != nil {
		return nil, err
	}

	m, err := resolveMotive("tipo_justificacion", req.TipoJustificacion, req.Familiar, req.HasAttachment(),
		model.MotivoMedicosPersonales, model.MotivoMedicosFamiliares, model.MotivoConvocatoria)
	if err != nil {
		return nil, err
	}

	cantidad, unidad, err := resolveCantidad(req.Cantidad, req.Unidad, userPosicion(su))
	if err != nil {
		return nil, err
	}

	var justificacionFecha *model.Date
	if req.JustificacionFecha != nil && !req.JustificacionFecha.IsZero() {
		d := model.NewDate(req.JustificacionFecha.Time)
		justificacionFecha = &d
	}

	var justificacionHora *string
	if h := trimmed(req.JustificacionHora); h != nil {
		minutes, err := workday.ParseClock(*h)
		if err != nil {
			return nil, errs.BadRequestField("justificacion_hora", "justificacion_hora inválida")
		}
		normalized := workday.FormatClock(minutes)
		justificacionHora = &normalized
	}

	nombre := su.User.FullName()

	return &justificacion.Justificacion{
		UserCedula:         su.User.Cedula,
		LinkedSolicitudID:  req.LinkedSolicitudID,
		NombreSuscriptor:   &nombre,
		Posicion:           su.User.Posicion,
		Instancia:          su.User.Instancia,
		TipoGeneral:        sc.TipoGeneral,
		TipoJustificacion:  m.Motivo,
		Familiar:           m.Familiar,
		EsRango:            req.EsRango,
		FechaInicio:        model.NewDate(req.FechaInicio.Time),
		FechaFin:           model.NewDate(end),
		Jornada:            &sc.Jornada,
		HoraInicio:         sc.HoraInicio,
		HoraFin:            sc.HoraFin,
		HoraSalida:         sc.HoraSalida,
		Cantidad:           cantidad,
		Unidad:             &unidad,
		JustificacionFecha: justificacionFecha,
		JustificacionHora:  justificacionHora,
		Observaciones:      trimmed(req.Observaciones),
	}, nil
}

func (s *JustificacionService) Create(ctx context.Context, su *user.SessionUser, req *justificacion.CreateJustificacionRequest) (*model.Created, error) {
	today := s.clock.Today(ctx)

	if req.LinkedSolicitudID != nil {
		linked, err := s.solicitudes.Get(ctx, *req.LinkedSolicitudID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("La solicitud vinculada no existe", false, nil)
		}
		if err != nil {
			return nil, err
		}
		if err := checkLinkedSolicitud(today, su, linked); err != nil {
			return nil, err
		}
	}

	row, err := buildJustificacion(today, su, req)
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
			log.Error().Err(err).Int64("justificacion_id", id).Msg("failed to store attachment row")
		}
	}

	log.Info().Int64("justificacion_id", id).Str("motivo", row.TipoJustificacion).Msg("justificacion created")

	return &model.Created{OK: true, ID: id}, nil
}

func (s *JustificacionService) List(ctx context.Context, su *user.SessionUser, q *model.ListQuery) (*model.PaginatedResponse[*justificacion.Justificacion], error) {
	q.Normalize()

	items, total, err := s.repo.List(ctx, *q, s.access.listScope(su))
	if err != nil {
		return nil, err
	}

	return &model.PaginatedResponse[*justificacion.Justificacion]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *JustificacionService) Pending(ctx context.Context, su *user.SessionUser) (*model.ListResponse[*justificacion.Justificacion], error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}

	items, err := s.repo.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ListResponse[*justificacion.Justificacion]{Items: items}, nil
}

func (s *JustificacionService) get(ctx context.Context, id int64) (*justificacion.Justificacion, error) {
	row, err := s.repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound()
	}
	return row, err
}

func (s *JustificacionService) Get(ctx context.Context, su *user.SessionUser, id int64) (*justificacion.Detail, error) {
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

	return &justificacion.Detail{Justificacion: row, Adjuntos: adjuntos}, nil
}

func (s *JustificacionService) Respond(ctx context.Context, su *user.SessionUser, req *model.RespondRequest) (*model.OK, error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}
	return s.resolver.resolve(ctx, su, model.KindJustificacion, justificacion.Decisiones, req, s.repo.Resolve)
}

func (s *JustificacionService) PDF(ctx context.Context, su *user.SessionUser, id int64) (*model.File, error) {
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

	return s.reports.Justificacion(row, adjuntos)
}
