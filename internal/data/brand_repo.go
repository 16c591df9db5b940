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

// BrandRepo provides database operations for brands.
type BrandRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBrandRepo creates a new BrandRepo with real time provider.
func NewBrandRepo(db *sql.DB) *BrandRepo {
	return &BrandRepo{DB: db, timeProvider: RealTimeProvider{}}
}

const brandColumnsSQL = `id, name, country, founded_year, website, website_domain, created_at, updated_at`

// CreateBrandParams carries the validated request plus the server-derived
// website domain. The domain is computed by the service from the website URL;
// the repo treats it as opaque.
type CreateBrandParams struct {
	Req           *model.CreateBrandRequest
	WebsiteDomain *string
}

// Create inserts a new brand.
func (r *BrandRepo) Create(ctx context.Context, params CreateBrandParams) (*model.Brand, error) {
	if params.Req == nil {
		return nil, errors.New("create brand request is required")
	}
	if err := params.Req.Validate(); err != nil {
		return nil, err
	}

	var out model.Brand
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO brands (name, country, founded_year, website, website_domain, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+brandColumnsSQL,
			strings.TrimSpace(params.Req.Name),
			params.Req.Country,
			params.Req.FoundedYear,
			params.Req.Website,
			params.WebsiteDomain,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Brand])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a brand by ID.
func (r *BrandRepo) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	return r.getByQuery(ctx,
		`SELECT `+brandColumnsSQL+` FROM brands WHERE id = $1`,
		"failed to get brand by ID", id)
}

// GetByName retrieves a brand by name.
func (r *BrandRepo) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	return r.getByQuery(ctx,
		`SELECT `+brandColumnsSQL+` FROM brands WHERE name = $1`,
		"failed to get brand by name", name)
}

// GetByWebsiteDomain retrieves a brand by registrable website domain.
func (r *BrandRepo) GetByWebsiteDomain(ctx context.Context, domain string) (*model.Brand, error) {
	return r.getByQuery(ctx,
		`SELECT `+brandColumnsSQL+` FROM brands WHERE website_domain = $1`,
		"failed to get brand by website domain", domain)
}

// ListWithOptions retrieves brands with optional filters.
func (r *BrandRepo) ListWithOptions(ctx context.Context, opts model.BrandsListOptions) ([]*model.Brand, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "name", "country", "founded_year", "website", "website_domain", "created_at", "updated_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("name", "ASC"),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("brands", queryOpts...))

	var rowsOut []model.Brand
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Brand])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	res := make([]*model.Brand, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateBrandParams carries the validated update request plus the re-derived
// website domain (set only when the website itself changes).
type UpdateBrandParams struct {
	Req           model.UpdateBrandRequest
	WebsiteDomain *string
}

// Update updates fields of a brand.
func (r *BrandRepo) Update(ctx context.Context, id string, params UpdateBrandParams) (*model.Brand, error) {
	if err := params.Req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	req := params.Req
	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Country != nil {
		setParts = append(setParts, fmt.Sprintf("country = $%d", nextIdx()))
		args = append(args, *req.Country)
	}
	if req.FoundedYear != nil {
		setParts = append(setParts, fmt.Sprintf("founded_year = $%d", nextIdx()))
		args = append(args, *req.FoundedYear)
	}
	if req.Website != nil {
		setParts = append(setParts, fmt.Sprintf("website = $%d", nextIdx()))
		args = append(args, *req.Website)
		setParts = append(setParts, fmt.Sprintf("website_domain = $%d", nextIdx()))
		args = append(args, params.WebsiteDomain)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE brands SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + brandColumnsSQL

	var out model.Brand
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Brand])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete removes a brand by ID.
func (r *BrandRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}
	return rows > 0, nil
}

func (r *BrandRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Brand, error) {
	var brand model.Brand
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		brand, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Brand])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &brand, nil
}

func (r *BrandRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrBrandNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "domain") {
			return ErrBrandDomainExists
		}
		return ErrBrandNameExists
	}
	return err
}
