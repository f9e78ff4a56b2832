package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnknownRole is returned when granting a slug that is not seeded.
var ErrUnknownRole = errors.New("unknown role")

const userColumns = `u.id, u.cedula, u.nombre, u.segundo_nombre, u.primer_apellido, u.segundo_apellido,
	u.posicion, u.categoria, u.instancia, u.correo, u.must_change_password, u.created_at, u.deleted_at`

func scanUser(row pgx.CollectableRow) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Cedula, &u.Nombre, &u.SegundoNombre, &u.PrimerApellido, &u.SegundoApellido,
		&u.Posicion, &u.Categoria, &u.Instancia, &u.Correo, &u.MustChangePassword, &u.CreatedAt, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindSession resolves an active session by the sha256 hex of its token.
func (r *UserRepository) FindSession(ctx context.Context, tokenHash string) (*user.SessionUser, error) {
	sql := `
		SELECT ` + userColumns + `, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = $1
			AND NOT s.revoked
			AND s.expires_at > now()
			AND u.deleted_at IS NULL`

	var (
		u         user.User
		expiresAt time.Time
	)
	err := r.pool.QueryRow(ctx, sql, tokenHash).Scan(
		&u.ID, &u.Cedula, &u.Nombre, &u.SegundoNombre, &u.PrimerApellido, &u.SegundoApellido,
		&u.Posicion, &u.Categoria, &u.Instancia, &u.Correo, &u.MustChangePassword, &u.CreatedAt, &u.DeletedAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	roles, err := r.Roles(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &user.SessionUser{
		User:      u,
		Roles:     roles,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}, nil
}

// Roles returns the role slugs held by a user.
func (r *UserRepository) Roles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.slug
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.slug`, userID)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *UserRepository) ListRoles(ctx context.Context) ([]user.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, slug, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (user.Role, error) {
		var role user.Role
		err := row.Scan(&role.ID, &role.Slug, &role.Name)
		return role, err
	})
}

// staffFilter matches the cedula, each name column, and the full name with
// and without the second given name.
func staffFilter(search string) (string, []any) {
	where := " WHERE u.deleted_at IS NULL"

	term := utils.FoldAccents(utils.CollapseSpaces(search))
	if term == "" {
		return where, nil
	}

	where += ` AND (u.cedula LIKE $1
		OR fold_text(u.nombre) LIKE $1
		OR fold_text(u.segundo_nombre) LIKE $1
		OR fold_text(u.primer_apellido) LIKE $1
		OR fold_text(u.segundo_apellido) LIKE $1
		OR fold_text(concat_ws(' ', u.nombre, u.segundo_nombre, u.primer_apellido, u.segundo_apellido)) LIKE $1
		OR fold_text(concat_ws(' ', u.nombre, u.primer_apellido, u.segundo_apellido)) LIKE $1)`
	return where, []any{"%" + escapeLike(term) + "%"}
}

func (r *UserRepository) ListStaff(ctx context.Context, q user.ListStaffQuery) ([]*user.User, int, error) {
	where, args := staffFilter(q.Search)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM users u"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
	sql := fmt.Sprintf("SELECT %s FROM users u%s ORDER BY u.primer_apellido, u.nombre LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetStaff returns a non-deleted user.
func (r *UserRepository) GetStaff(ctx context.Context, id uuid.UUID) (*user.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1 AND u.deleted_at IS NULL", id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return pgx.CollectExactlyOneRow(rows, scanUser)
}

func (r *UserRepository) GetByCedula(ctx context.Context, cedula string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users u WHERE u.cedula = $1", cedula)
	if err != nil {
		return nil, fmt.Errorf("get user by cedula: %w", err)
	}
	return pgx.CollectExactlyOneRow(rows, scanUser)
}

// CreateStaff inserts a user and grants the initial role in one transaction.
func (r *UserRepository) CreateStaff(ctx context.Context, req *user.CreateStaffRequest, passwordHash string) (uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO users (
			cedula, nombre, segundo_nombre, primer_apellido, segundo_apellido,
			posicion, categoria, instancia, correo, password_hash, must_change_password
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
		RETURNING id`,
		req.Cedula, req.Nombre, req.SegundoNombre, req.PrimerApellido, req.SegundoApellido,
		req.Posicion, req.Categoria, req.Instancia, req.Correo, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}

	if err := grantRole(ctx, tx, id, req.RoleSlug); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// UpdateStaff applies a partial update. A non-nil resetHash replaces the
// password hash and forces a change on next login.
func (r *UserRepository) UpdateStaff(ctx context.Context, id uuid.UUID, req *user.UpdateStaffRequest, resetHash *string) error {
	sets, args := staffUpdateSet(req, resetHash)
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d AND deleted_at IS NULL", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func staffUpdateSet(req *user.UpdateStaffRequest, resetHash *string) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Nombre != nil {
		set("nombre", *req.Nombre)
	}
	if req.SegundoNombre != nil {
		set("segundo_nombre", utils.NilIfBlank(req.SegundoNombre))
	}
	if req.PrimerApellido != nil {
		set("primer_apellido", *req.PrimerApellido)
	}
	if req.SegundoApellido != nil {
		set("segundo_apellido", *req.SegundoApellido)
	}
	if req.Posicion != nil {
		set("posicion", *req.Posicion)
	}
	if req.Categoria != nil {
		set("categoria", *req.Categoria)
	}
	if req.Instancia != nil {
		set("instancia", *req.Instancia)
	}
	if req.Correo != nil {
		set("correo", utils.NilIfBlank(req.Correo))
	}
	if resetHash != nil {
		set("password_hash", *resetHash)
		set("must_change_password", true)
	} else if req.MustChangePassword != nil {
		set("must_change_password", *req.MustChangePassword)
	}

	return sets, args
}

// SoftDelete marks a user deleted.
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const (
	// revokeSessionsSQL also ends the session now, so the purge counts
	// purge_after from the revocation.
	revokeSessionsSQL = `
		UPDATE sessions SET revoked = true, expires_at = LEAST(expires_at, now())
		WHERE user_id = $1 AND NOT revoked
		RETURNING token_hash`

	purgeSessionsSQL = `DELETE FROM sessions WHERE expires_at < $1`
)

// RevokeSessions revokes every active session of a user and returns their
// token hashes.
func (r *UserRepository) RevokeSessions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, revokeSessionsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("revoke sessions: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ActiveSessionHashes lists the token hashes of a user's live sessions.
func (r *UserRepository) ActiveSessionHashes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT token_hash FROM sessions
		WHERE user_id = $1 AND NOT revoked AND expires_at > now()`, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// PurgeSessions deletes sessions whose expiry, which revocation moves to the
// revocation time, is before the cutoff.
func (r *UserRepository) PurgeSessions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, purgeSessionsSQL, before)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) GrantRole(ctx context.Context, userID uuid.UUID, slug string) error {
	return grantRole(ctx, r.pool, userID, slug)
}

// RevokeRole removes a role. It reports false when the user did not hold it.
func (r *UserRepository) RevokeRole(ctx context.Context, userID uuid.UUID, slug string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role_id = (SELECT id FROM roles WHERE slug = $2)`, userID, slug)
	if err != nil {
		return false, fmt.Errorf("revoke role: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func grantRole(ctx context.Context, db querier, userID uuid.UUID, slug string) error {
	var known bool
	if err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM roles WHERE slug = $1)", slug).Scan(&known); err != nil {
		return fmt.Errorf("check role: %w", err)
	}
	if !known {
		return ErrUnknownRole
	}

	_, err := db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE slug = $2
		ON CONFLICT DO NOTHING`, userID, slug)
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}
