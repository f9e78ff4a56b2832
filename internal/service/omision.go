package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/workday"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type OmisionService struct {
	repo     *repository.OmisionRepository
	clock    *Clock
	resolver *Resolver
	reports  *Reports
	access   access
}

func NewOmisionService(repo *repository.OmisionRepository, clock *Clock, resolver *Resolver, reports *Reports) *OmisionService {
	return &OmisionService{
		repo:     repo,
		clock:    clock,
		resolver: resolver,
		reports:  reports,
		access:   newAccess(user.PersonnelManagers),
	}
}

func buildOmision(today time.Time, su *user.SessionUser, req *omision.CreateOmisionRequest) (*omision.Omision, error) {
	if !workday.InJustificationWindow(req.FechaOmision.Time, today) {
		return nil, errs.BadRequestField("fecha_omision", windowMessage(today))
	}

	nombre := su.User.FullName()

	return &omision.Omision{
		UserCedula:       su.User.Cedula,
		NombreSuscriptor: &nombre,
		Posicion:         su.User.Posicion,
		Instancia:        su.User.Instancia,
		FechaOmision:     model.NewDate(req.FechaOmision.Time),
		TipoOmision:      req.TipoOmision,
		Justificacion:    req.Justificacion,
	}, nil
}

func (s *OmisionService) Create(ctx context.Context, su *user.SessionUser, req *omision.CreateOmisionRequest) (*model.Created, error) {
	row, err := buildOmision(s.clock.Today(ctx), su, req)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("omision_id", id).Str("tipo", row.TipoOmision).Msg("omision created")

	return &model.Created{OK: true, ID: id}, nil
}

func (s *OmisionService) List(ctx context.Context, su *user.SessionUser, q *model.ListQuery) (*model.PaginatedResponse[*omision.Omision], error) {
	q.Normalize()

	items, total, err := s.repo.List(ctx, *q, s.access.listScope(su))
	if err != nil {
		return nil, err
	}

	return &model.PaginatedResponse[*omision.Omision]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *OmisionService) Pending(ctx context.Context, su *user.SessionUser) (*model.ListResponse[*omision.Omision], error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}

	items, err := s.repo.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ListResponse[*omision.Omision]{Items: items}, nil
}

func (s *OmisionService) get(ctx context.Context, su *user.SessionUser, id int64, allowed func(*user.SessionUser, string) bool) (*omision.Omision, error) {
	row, err := s.repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound()
	}
	if err != nil {
		return nil, err
	}
	if !allowed(su, row.UserCedula) {
		return nil, errNoAccess()
	}
	return row, nil
}

func (s *OmisionService) Get(ctx context.Context, su *user.SessionUser, id int64) (*omision.Detail, error) {
	row, err := s.get(ctx, su, id, s.access.canRead)
	if err != nil {
		return nil, err
	}
	return &omision.Detail{Omision: row}, nil
}

func (s *OmisionService) Respond(ctx context.Context, su *user.SessionUser, req *model.RespondRequest) (*model.OK, error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}
	return s.resolver.resolve(ctx, su, model.KindOmision, omision.Decisiones, req, s.repo.Resolve)
}

func (s *OmisionService) PDF(ctx context.Context, su *user.SessionUser, id int64) (*model.File, error) {
	row, err := s.get(ctx, su, id, s.access.canDownload)
	if err != nil {
		return nil, err
	}
	return s.reports.Omision(row)
}
