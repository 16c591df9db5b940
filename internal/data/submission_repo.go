package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/aromabase/aromabase/internal/data/database"
	"github.com/aromabase/aromabase/internal/data/pgxutil"
	"github.com/aromabase/aromabase/internal/domain/model"
)

// SubmissionRepo provides database operations for contributor submissions.
type SubmissionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSubmissionRepo creates a new SubmissionRepo with real time provider.
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{DB: db, timeProvider: RealTimeProvider{}}
}

const submissionColumnsSQL = `id, kind, target_id, payload, status,
	submitted_by, reviewed_by, review_comment, created_at, reviewed_at`

// Create inserts a new submission in pending status.
func (r *SubmissionRepo) Create(ctx context.Context, req *model.CreateSubmissionRequest, submittedBy string) (*model.Submission, error) {
	if req == nil {
		return nil, errors.New("create submission request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if submittedBy == "" {
		return nil, errors.New("submitting user is required")
	}

	var out model.Submission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO submissions (kind, target_id, payload, status, submitted_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+submissionColumnsSQL,
			req.Kind,
			req.TargetID,
			req.Payload,
			model.CatalogStatusPending,
			submittedBy,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Submission])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a submission by ID.
func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+submissionColumnsSQL+` FROM submissions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		sub, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Submission])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission by ID: %w", err)
	}
	return &sub, nil
}

// ListWithOptions retrieves submissions with optional filters.
func (r *SubmissionRepo) ListWithOptions(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.Submission, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(
			"id", "kind", "target_id", "payload", "status",
			"submitted_by", "reviewed_by", "review_comment", "created_at", "reviewed_at",
		),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.Kind != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("kind", database.Equal, *opts.Kind),
		))
	}
	if opts.SubmittedBy != nil && strings.TrimSpace(*opts.SubmittedBy) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("submitted_by", database.Equal, strings.TrimSpace(*opts.SubmittedBy)),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("submissions", queryOpts...))

	var rowsOut []model.Submission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Submission])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	res := make([]*model.Submission, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// CountByStatus returns the number of submissions in the given status.
func (r *SubmissionRepo) CountByStatus(ctx context.Context, status model.CatalogStatus) (int64, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions("submissions",
		database.WithCountOnly(),
		database.WithCondition(database.WhereCond("status", database.Equal, status)),
	))

	var count int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// SetReviewOutcome records a review decision. Only pending submissions can be
// reviewed; reviewing an already-decided submission returns ErrSubmissionNotFound.
func (r *SubmissionRepo) SetReviewOutcome(
	ctx context.Context,
	id string,
	status model.CatalogStatus,
	reviewedBy string,
	comment *string,
) (*model.Submission, error) {
	if status != model.CatalogStatusApproved && status != model.CatalogStatusRejected {
		return nil, errors.New("review outcome must be approved or rejected")
	}

	var out model.Submission
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE submissions
			SET status = $1, reviewed_by = $2, review_comment = $3, reviewed_at = $4
			WHERE id = $5 AND status = $6
			RETURNING `+submissionColumnsSQL,
			status, reviewedBy, comment, r.timeProvider.Now().UTC(), id, model.CatalogStatusPending)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Submission])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to record review outcome: %w", err)
	}
	return &out, nil
}

// Delete removes a submission by ID.
func (r *SubmissionRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete submission: %w", err)
	}
	return rows > 0, nil
}
