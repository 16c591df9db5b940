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

// NoteRepo provides database operations for olfactory notes.
type NoteRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNoteRepo creates a new NoteRepo with real time provider.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{DB: db, timeProvider: RealTimeProvider{}}
}

const noteColumnsSQL = `id, name, family, created_at, updated_at`

// Create inserts a new note.
func (r *NoteRepo) Create(ctx context.Context, req *model.CreateNoteRequest) (*model.Note, error) {
	if req == nil {
		return nil, errors.New("create note request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Note
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO notes (name, family, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING `+noteColumnsSQL,
			strings.TrimSpace(req.Name),
			req.Family,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a note by ID.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	return r.getByQuery(ctx,
		`SELECT `+noteColumnsSQL+` FROM notes WHERE id = $1`,
		"failed to get note by ID", id)
}

// GetByIDs retrieves the notes matching the given IDs. Missing IDs are simply
// absent from the result; callers needing existence checks compare lengths.
func (r *NoteRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rowsOut []model.Note
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+noteColumnsSQL+` FROM notes WHERE id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Note])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get notes by IDs: %w", err)
	}

	res := make([]*model.Note, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListWithOptions retrieves notes with optional filters.
func (r *NoteRepo) ListWithOptions(ctx context.Context, opts model.NotesListOptions) ([]*model.Note, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "name", "family", "created_at", "updated_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("name", "ASC"),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Family != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("family", database.Equal, *opts.Family),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("notes", queryOpts...))

	var rowsOut []model.Note
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Note])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	res := make([]*model.Note, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a note.
func (r *NoteRepo) Update(ctx context.Context, id string, req model.UpdateNoteRequest) (*model.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Family != nil {
		setParts = append(setParts, fmt.Sprintf("family = $%d", nextIdx()))
		args = append(args, *req.Family)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE notes SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + noteColumnsSQL

	var out model.Note
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete removes a note by ID.
func (r *NoteRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	return rows > 0, nil
}

func (r *NoteRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Note, error) {
	var note model.Note
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		note, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &note, nil
}

func (r *NoteRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrNoteNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrNoteNameExists
	}
	return err
}
