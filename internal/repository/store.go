package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadyResolved is returned when resolving a row that is no longer pending.
var ErrAlreadyResolved = errors.New("request already resolved")

// pendingPredicate matches rows that may still be resolved.
const pendingPredicate = "(estado IS NULL OR estado IN ('Pendiente', 'pendiente'))"

// ResolveParams is the manager's answer written onto a row.
type ResolveParams struct {
	Estado     string
	Comentario *string
	Por        string
	Nombre     string
}

// requestStore holds the queries shared by the four request tables.
type requestStore[T any] struct {
	pool          *pgxpool.Pool
	table         string
	columns       string
	scan          pgx.RowToFunc[T]
	searchColumns []string
}

func (s *requestStore[T]) list(ctx context.Context, q model.ListQuery, cedula string) ([]T, int, error) {
	where, args := s.filter(q, cedula)

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+s.table+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.table, err)
	}

	order := "DESC"
	if q.Order == "oldest" {
		order = "ASC"
	}

	args = append(args, q.PageSize, q.Offset())
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY creado_en %s, id %s LIMIT $%d OFFSET $%d",
		s.columns, s.table, where, order, order, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.table, err)
	}

	items, err := pgx.CollectRows(rows, s.scan)
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", s.table, err)
	}

	return items, total, nil
}

// filter builds the WHERE clause of a list query. An empty cedula lists
// every requester.
func (s *requestStore[T]) filter(q model.ListQuery, cedula string) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if cedula != "" {
		args = append(args, cedula)
		conds = append(conds, fmt.Sprintf("user_cedula = $%d", len(args)))
	}

	if cat := q.Estado.Categoria(); cat != "" {
		args = append(args, string(cat))
		conds = append(conds, fmt.Sprintf("estado_categoria(estado) = $%d", len(args)))
	}

	if term := utils.FoldAccents(utils.CollapseSpaces(q.Search)); term != "" && len(s.searchColumns) > 0 {
		args = append(args, "%"+escapeLike(term)+"%")
		ors := make([]string, 0, len(s.searchColumns))
		for _, c := range s.searchColumns {
			ors = append(ors, fmt.Sprintf("fold_text(%s) LIKE $%d", c, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *requestStore[T]) pending(ctx context.Context) ([]T, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY creado_en ASC, id ASC", s.columns, s.table, pendingPredicate)

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("pending %s: %w", s.table, err)
	}

	return pgx.CollectRows(rows, s.scan)
}

func (s *requestStore[T]) get(ctx context.Context, id int64) (T, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.columns, s.table), id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s: %w", s.table, err)
	}

	return pgx.CollectExactlyOneRow(rows, s.scan)
}

// resolve records a decision on a pending row and returns the requester's
// cedula. A missing row yields pgx.ErrNoRows.
func (s *requestStore[T]) resolve(ctx context.Context, id int64, p ResolveParams) (string, error) {
	sql := fmt.Sprintf(`
		UPDATE %s
		SET estado = $2,
			respuesta_comentario = $3,
			respuesta_en = now(),
			respuesta_por = $4,
			respuesta_nombre = $5
		WHERE id = $1 AND %s
		RETURNING user_cedula`, s.table, pendingPredicate)

	var cedula string
	err := s.pool.QueryRow(ctx, sql, id, p.Estado, p.Comentario, p.Por, p.Nombre).Scan(&cedula)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := s.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+s.table+" WHERE id = $1)", id).Scan(&exists); err != nil {
			return "", fmt.Errorf("check %s: %w", s.table, err)
		}
		if exists {
			return "", ErrAlreadyResolved
		}
		return "", pgx.ErrNoRows
	}
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", s.table, err)
	}

	return cedula, nil
}

// attachmentStore manages a request kind's attachment rows.
type attachmentStore struct {
	pool  *pgxpool.Pool
	table string
	fk    string
}

func (a *attachmentStore) add(ctx context.Context, parentID int64, in model.AttachmentInput, uploadedBy string) error {
	sql := fmt.Sprintf("INSERT INTO %s (%s, path, public_url, mime, uploaded_by_cedula) VALUES ($1, $2, $3, $4, $5)", a.table, a.fk)

	_, err := a.pool.Exec(ctx, sql, parentID, in.AdjuntoPath, in.AdjuntoURL, in.AdjuntoMime, uploadedBy)
	if err != nil {
		return fmt.Errorf("insert %s: %w", a.table, err)
	}
	return nil
}

func (a *attachmentStore) list(ctx context.Context, parentID int64) ([]model.Attachment, error) {
	sql := fmt.Sprintf("SELECT id, path, public_url, mime, uploaded_by_cedula, uploaded_at FROM %s WHERE %s = $1 ORDER BY uploaded_at, id", a.table, a.fk)

	rows, err := a.pool.Query(ctx, sql, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", a.table, err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Attachment, error) {
		var at model.Attachment
		err := row.Scan(&at.ID, &at.Path, &at.PublicURL, &at.Mime, &at.UploadedBy, &at.UploadedAt)
		return at, err
	})
}

// resolutionColumns are scanned with resolutionDest, in this order.
const resolutionColumns = "estado, respuesta_comentario, respuesta_en, respuesta_por, respuesta_nombre"

func resolutionDest(r *model.Resolution) []any {
	return []any{&r.Estado, &r.RespuestaComentario, &r.RespuestaEn, &r.RespuestaPor, &r.RespuestaNombre}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
