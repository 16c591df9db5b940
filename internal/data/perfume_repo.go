package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aromabase/aromabase/internal/data/database"
	"github.com/aromabase/aromabase/internal/data/pgxutil"
	"github.com/aromabase/aromabase/internal/domain/model"
)

// PerfumeRepo provides database operations for perfume catalog entries.
type PerfumeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPerfumeRepo creates a new PerfumeRepo with real time provider.
func NewPerfumeRepo(db *sql.DB) *PerfumeRepo {
	return &PerfumeRepo{DB: db, timeProvider: RealTimeProvider{}}
}

const perfumeColumnsSQL = `id, name, brand_id, concentration, release_year,
	top_note_ids, heart_note_ids, base_note_ids,
	status, submitted_by, reviewed_by, created_at, updated_at`

// Create inserts a new perfume entry. New entries start in pending status and
// carry the submitting user.
func (r *PerfumeRepo) Create(ctx context.Context, req *model.CreatePerfumeRequest, submittedBy string) (*model.Perfume, error) {
	if req == nil {
		return nil, errors.New("create perfume request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if submittedBy == "" {
		return nil, errors.New("submitting user is required")
	}

	var out model.Perfume
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO perfumes (
				name, brand_id, concentration, release_year,
				top_note_ids, heart_note_ids, base_note_ids,
				status, submitted_by, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			RETURNING `+perfumeColumnsSQL,
			strings.TrimSpace(req.Name),
			req.BrandID,
			req.Concentration,
			req.ReleaseYear,
			notesOrEmpty(req.TopNoteIDs),
			notesOrEmpty(req.HeartNoteIDs),
			notesOrEmpty(req.BaseNoteIDs),
			model.CatalogStatusPending,
			submittedBy,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Perfume])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a perfume by ID.
func (r *PerfumeRepo) GetByID(ctx context.Context, id string) (*model.Perfume, error) {
	var perfume model.Perfume
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+perfumeColumnsSQL+` FROM perfumes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		perfume, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Perfume])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to get perfume by ID: %w", err)
	}
	return &perfume, nil
}

// ListWithOptions retrieves perfumes with optional filters.
func (r *PerfumeRepo) ListWithOptions(ctx context.Context, opts model.PerfumesListOptions) ([]*model.Perfume, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(
			"id", "name", "brand_id", "concentration", "release_year",
			"top_note_ids", "heart_note_ids", "base_note_ids",
			"status", "submitted_by", "reviewed_by", "created_at", "updated_at",
		),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.BrandID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("brand_id", database.Equal, *opts.BrandID),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("perfumes", queryOpts...))

	var rowsOut []model.Perfume
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Perfume])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list perfumes: %w", err)
	}

	res := make([]*model.Perfume, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// CountByStatus returns the number of perfumes in the given status.
func (r *PerfumeRepo) CountByStatus(ctx context.Context, status model.CatalogStatus) (int64, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions("perfumes",
		database.WithCountOnly(),
		database.WithCondition(database.WhereCond("status", database.Equal, status)),
	))

	var count int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count perfumes: %w", err)
	}
	return count, nil
}

// Update updates fields of a perfume.
func (r *PerfumeRepo) Update(ctx context.Context, id string, req model.UpdatePerfumeRequest) (*model.Perfume, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 8)
	args := make([]any, 0, 9)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.BrandID != nil {
		setParts = append(setParts, fmt.Sprintf("brand_id = $%d", nextIdx()))
		args = append(args, *req.BrandID)
	}
	if req.Concentration != nil {
		setParts = append(setParts, fmt.Sprintf("concentration = $%d", nextIdx()))
		args = append(args, *req.Concentration)
	}
	if req.ReleaseYear != nil {
		setParts = append(setParts, fmt.Sprintf("release_year = $%d", nextIdx()))
		args = append(args, *req.ReleaseYear)
	}
	if req.TopNoteIDs != nil {
		setParts = append(setParts, fmt.Sprintf("top_note_ids = $%d", nextIdx()))
		args = append(args, req.TopNoteIDs)
	}
	if req.HeartNoteIDs != nil {
		setParts = append(setParts, fmt.Sprintf("heart_note_ids = $%d", nextIdx()))
		args = append(args, req.HeartNoteIDs)
	}
	if req.BaseNoteIDs != nil {
		setParts = append(setParts, fmt.Sprintf("base_note_ids = $%d", nextIdx()))
		args = append(args, req.BaseNoteIDs)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE perfumes SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + perfumeColumnsSQL

	var out model.Perfume
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Perfume])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// SetStatus transitions a perfume's review status and records the reviewer.
func (r *PerfumeRepo) SetStatus(ctx context.Context, id string, status model.CatalogStatus, reviewedBy string) (*model.Perfume, error) {
	if !status.Valid() {
		return nil, errors.New("invalid catalog status")
	}

	var out model.Perfume
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE perfumes SET status = $1, reviewed_by = $2, updated_at = $3
			WHERE id = $4
			RETURNING `+perfumeColumnsSQL,
			status, reviewedBy, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Perfume])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete removes a perfume by ID.
func (r *PerfumeRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM perfumes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete perfume: %w", err)
	}
	return rows > 0, nil
}

// notesOrEmpty normalizes a nil note slice to an empty array so the column's
// NOT NULL default holds.
func notesOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (r *PerfumeRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrPerfumeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrPerfumeExists
		case pgerrcode.ForeignKeyViolation:
			return ErrPerfumeBrandRef
		}
	}
	return err
}
