package service

import (
	"context"
	"errors"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/job"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/deppfellow/mipp-portal/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type resolveFunc func(ctx context.Context, id int64, p repository.ResolveParams) (string, error)

// RequesterLookup finds the user a notice is addressed to.
type RequesterLookup interface {
	GetByCedula(ctx context.Context, cedula string) (*user.User, error)
}

// Resolver records manager decisions and notifies the requester.
type Resolver struct {
	users    RequesterLookup
	enqueuer job.Enqueuer
}

func NewResolver(users RequesterLookup, enqueuer job.Enqueuer) *Resolver {
	return &Resolver{users: users, enqueuer: enqueuer}
}

func (r *Resolver) resolve(
	ctx context.Context,
	su *user.SessionUser,
	kind model.Kind,
	allowed []string,
	req *model.RespondRequest,
	apply resolveFunc,
) (*model.OK, error) {
	if err := model.CheckDecision(allowed, req.Decision, req.Comentario); err != nil {
		var ve validation.CustomValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return nil, errs.BadRequestField(ve[0].Field, ve[0].Message)
		}
		return nil, err
	}

	params := repository.ResolveParams{
		Estado: req.Decision,
		Por:    su.User.Cedula,
		Nombre: su.User.FullName(),
	}
	if req.Comentario != "" {
		params.Comentario = &req.Comentario
	}

	requester, err := apply(ctx, req.ID, params)
	switch {
	case errors.Is(err, repository.ErrAlreadyResolved):
		code := errs.CodeAlreadyResolved
		return nil, errs.NewBadRequestError("Este registro ya fue resuelto", true, &code, nil, nil)
	case errors.Is(err, pgx.ErrNoRows):
		return nil, errNotFound()
	case err != nil:
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("kind", string(kind)).
		Int64("id", req.ID).
		Str("decision", req.Decision).
		Msg("request resolved")

	r.notify(ctx, kind, req, requester)

	return &model.OK{OK: true}, nil
}

// notify queues the resolution e-mail. Failures are logged only.
func (r *Resolver) notify(ctx context.Context, kind model.Kind, req *model.RespondRequest, cedula string) {
	log := zerolog.Ctx(ctx)

	if r.enqueuer == nil || r.users == nil {
		return
	}

	requester, err := r.users.GetByCedula(ctx, cedula)
	if err != nil {
		log.Warn().Err(err).Str("cedula", cedula).Msg("could not load requester for notification")
		return
	}
	if requester.Correo == nil || *requester.Correo == "" {
		return
	}

	task, err := job.NewResolutionEmailTask(resolutionPayload(kind, req, requester))
	if err != nil {
		log.Error().Err(err).Msg("failed to build resolution email task")
		return
	}

	if _, err := r.enqueuer.EnqueueContext(ctx, task); err != nil {
		log.Error().Err(err).Msg("failed to enqueue resolution email")
	}
}

func resolutionPayload(kind model.Kind, req *model.RespondRequest, requester *user.User) job.ResolutionEmailPayload {
	decision := req.Decision
	return job.ResolutionEmailPayload{
		To:         *requester.Correo,
		Nombre:     requester.FullName(),
		Tipo:       kind.Label(),
		Folio:      req.ID,
		Decision:   decision,
		Comentario: req.Comentario,
		Aprobado:   model.ClassifyEstado(&decision) == model.CategoriaAprobado,
	}
}
