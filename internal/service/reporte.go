package service

import (
	"context"
	"errors"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/reporte"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ReporteService handles infrastructure reports. Its queue belongs to the
// infrastructure managers.
type ReporteService struct {
	repo     *repository.ReporteRepository
	resolver *Resolver
	reports  *Reports
	access   access
}

func NewReporteService(repo *repository.ReporteRepository, resolver *Resolver, reports *Reports) *ReporteService {
	return &ReporteService{
		repo:     repo,
		resolver: resolver,
		reports:  reports,
		access:   newAccess(user.InfraManagers),
	}
}

func buildReporte(su *user.SessionUser, req *reporte.CreateReporteRequest) *reporte.Reporte {
	nombre := su.User.FullName()

	return &reporte.Reporte{
		UserCedula:       su.User.Cedula,
		NombreSuscriptor: &nombre,
		Posicion:         su.User.Posicion,
		Instancia:        su.User.Instancia,
		TipoReporte:      req.TipoReporte,
		Lugar:            req.Lugar,
		Reporte:          req.Reporte,
	}
}

func (s *ReporteService) Create(ctx context.Context, su *user.SessionUser, req *reporte.CreateReporteRequest) (*model.Created, error) {
	row := buildReporte(su, req)

	id, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("reporte_id", id).Str("tipo", row.TipoReporte).Msg("reporte created")

	return &model.Created{OK: true, ID: id}, nil
}

func (s *ReporteService) List(ctx context.Context, su *user.SessionUser, q *model.ListQuery) (*model.PaginatedResponse[*reporte.Reporte], error) {
	q.Normalize()

	items, total, err := s.repo.List(ctx, *q, s.access.listScope(su))
	if err != nil {
		return nil, err
	}

	return &model.PaginatedResponse[*reporte.Reporte]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *ReporteService) Pending(ctx context.Context, su *user.SessionUser) (*model.ListResponse[*reporte.Reporte], error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}

	items, err := s.repo.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ListResponse[*reporte.Reporte]{Items: items}, nil
}

func (s *ReporteService) get(ctx context.Context, su *user.SessionUser, id int64, allowed func(*user.SessionUser, string) bool) (*reporte.Reporte, error) {
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

func (s *ReporteService) Get(ctx context.Context, su *user.SessionUser, id int64) (*reporte.Detail, error) {
	row, err := s.get(ctx, su, id, s.access.canRead)
	if err != nil {
		return nil, err
	}
	return &reporte.Detail{Reporte: row}, nil
}

func (s *ReporteService) Respond(ctx context.Context, su *user.SessionUser, req *model.RespondRequest) (*model.OK, error) {
	if err := s.access.requireManager(su); err != nil {
		return nil, err
	}
	return s.resolver.resolve(ctx, su, model.KindReporteInfra, reporte.Decisiones, req, s.repo.Resolve)
}

func (s *ReporteService) PDF(ctx context.Context, su *user.SessionUser, id int64) (*model.File, error) {
	row, err := s.get(ctx, su, id, s.access.canDownload)
	if err != nil {
		return nil, err
	}
	return s.reports.Reporte(row)
}
