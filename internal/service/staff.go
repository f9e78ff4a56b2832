package service

import (
	"context"
	"errors"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// StaffService administers staff accounts and role grants.
type StaffService struct {
	users           *repository.UserRepository
	sessions        *SessionService
	defaultPassword string
}

func NewStaffService(users *repository.UserRepository, sessions *SessionService, defaultPassword string) *StaffService {
	return &StaffService{users: users, sessions: sessions, defaultPassword: defaultPassword}
}

func errUserNotFound() error {
	return errs.NewNotFoundError("Usuario no encontrado", true, nil)
}

// parseStaffID parses a path id. Request validation has already checked the
// format, so a failure here is a 404.
func parseStaffID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errUserNotFound()
	}
	return id, nil
}

// checkElevated rejects grants and revocations of elevated roles by anyone
// but an admin.
func checkElevated(su *user.SessionUser, slug string) error {
	for _, elevated := range user.ElevatedRoles {
		if slug == elevated && !su.HasAnyRole(user.RoleAdmin) {
			return errs.NewForbiddenError("Solo un administrador puede asignar o retirar el rol "+slug, true)
		}
	}
	return nil
}

func (s *StaffService) hashDefaultPassword() (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *StaffService) List(ctx context.Context, q *user.ListStaffQuery) (*user.StaffPage, error) {
	q.Normalize()

	users, total, err := s.users.ListStaff(ctx, *q)
	if err != nil {
		return nil, err
	}

	page := &user.StaffPage{Users: make([]user.User, 0, len(users)), Total: total, Page: q.Page, PageSize: q.PageSize}
	for _, u := range users {
		page.Users = append(page.Users, *u)
	}
	return page, nil
}

func (s *StaffService) Get(ctx context.Context, rawID string) (*user.StaffResponse, error) {
	id, err := parseStaffID(rawID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetStaff(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errUserNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &user.StaffResponse{User: *u}, nil
}

func (s *StaffService) Create(ctx context.Context, su *user.SessionUser, req *user.CreateStaffRequest) (*user.CreatedStaff, error) {
	if err := checkElevated(su, req.RoleSlug); err != nil {
		return nil, err
	}

	hash, err := s.hashDefaultPassword()
	if err != nil {
		return nil, err
	}

	id, err := s.users.CreateStaff(ctx, req, hash)
	if errors.Is(err, repository.ErrUnknownRole) {
		return nil, errs.BadRequestField("role_slug", "Rol desconocido")
	}
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("target_user_id", id.String()).
		Str("role", req.RoleSlug).
		Msg("staff member created")

	return &user.CreatedStaff{OK: true, ID: id}, nil
}

func (s *StaffService) Update(ctx context.Context, req *user.UpdateStaffRequest) (*model.OK, error) {
	id, err := parseStaffID(req.ID)
	if err != nil {
		return nil, err
	}

	reset := req.MustChangePassword != nil && *req.MustChangePassword

	var resetHash *string
	if reset {
		hash, err := s.hashDefaultPassword()
		if err != nil {
			return nil, err
		}
		resetHash = &hash
	}

	err = s.users.UpdateStaff(ctx, id, req, resetHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errUserNotFound()
	}
	if err != nil {
		return nil, err
	}

	if reset {
		if err := s.sessions.RevokeAll(ctx, id); err != nil {
			return nil, err
		}
	} else if err := s.sessions.Invalidate(ctx, id); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate cached sessions")
	}

	return &model.OK{OK: true}, nil
}

func (s *StaffService) Delete(ctx context.Context, rawID string) (*model.OK, error) {
	id, err := parseStaffID(rawID)
	if err != nil {
		return nil, err
	}

	err = s.users.SoftDelete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errUserNotFound()
	}
	if err != nil {
		return nil, err
	}

	if err := s.sessions.RevokeAll(ctx, id); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("target_user_id", id.String()).Msg("staff member deleted")

	return &model.OK{OK: true}, nil
}

func (s *StaffService) Roles(ctx context.Context) (*model.ListResponse[user.Role], error) {
	roles, err := s.users.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ListResponse[user.Role]{Items: roles}, nil
}

func (s *StaffService) GrantRole(ctx context.Context, su *user.SessionUser, req *user.GrantRoleRequest) (*model.OK, error) {
	if err := checkElevated(su, req.RoleSlug); err != nil {
		return nil, err
	}

	id, err := parseStaffID(req.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetStaff(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errUserNotFound()
		}
		return nil, err
	}

	err = s.users.GrantRole(ctx, id, req.RoleSlug)
	if errors.Is(err, repository.ErrUnknownRole) {
		return nil, errs.BadRequestField("role_slug", "Rol desconocido")
	}
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Invalidate(ctx, id); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("target_user_id", id.String()).Str("role", req.RoleSlug).Msg("role granted")

	return &model.OK{OK: true}, nil
}

func (s *StaffService) RevokeRole(ctx context.Context, su *user.SessionUser, req *user.RevokeRoleRequest) (*model.OK, error) {
	if err := checkElevated(su, req.Slug); err != nil {
		return nil, err
	}

	id, err := parseStaffID(req.ID)
	if err != nil {
		return nil, err
	}

	removed, err := s.users.RevokeRole(ctx, id, req.Slug)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, errs.NewNotFoundError("El usuario no tiene ese rol", true, nil)
	}

	if err := s.sessions.Invalidate(ctx, id); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("target_user_id", id.String()).Str("role", req.Slug).Msg("role revoked")

	return &model.OK{OK: true}, nil
}
