package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/aromabase/aromabase/internal/core"
	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// BrandServiceOptions groups dependencies for BrandService.
type BrandServiceOptions struct {
	BrandRepo core.BrandRepository
}

// BrandService orchestrates brand CRUD. Website URLs are normalized to their
// registrable domain (eTLD+1) so the same house cannot be registered twice
// under cosmetic URL variations (www prefix, trailing path, scheme).
type BrandService struct {
	brands core.BrandRepository
}

// NewBrandService constructs a new BrandService.
func NewBrandService(opts BrandServiceOptions) *BrandService {
	return &BrandService{brands: opts.BrandRepo}
}

// Create creates a brand, deriving the registrable website domain first.
func (s *BrandService) Create(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error) {
	if req == nil {
		return nil, apperrors.Validation("create brand request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid brand")
	}

	domain, err := websiteDomain(req.Website)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid website")
	}

	brand, err := s.brands.Create(ctx, data.CreateBrandParams{Req: req, WebsiteDomain: domain})
	if err != nil {
		return nil, mapBrandErr(err)
	}
	return brand, nil
}

// Update updates a brand, re-deriving the website domain when the website changes.
func (s *BrandService) Update(ctx context.Context, id string, req model.UpdateBrandRequest) (*model.Brand, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid brand update")
	}

	params := data.UpdateBrandParams{Req: req}
	if req.Website != nil {
		domain, err := websiteDomain(req.Website)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid website")
		}
		params.WebsiteDomain = domain
	}

	brand, err := s.brands.Update(ctx, id, params)
	if err != nil {
		return nil, mapBrandErr(err)
	}
	return brand, nil
}

// GetByID retrieves a brand by ID.
func (s *BrandService) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return nil, mapBrandErr(err)
	}
	return brand, nil
}

// List returns brands matching the options.
func (s *BrandService) List(ctx context.Context, opts model.BrandsListOptions) ([]*model.Brand, error) {
	return s.brands.ListWithOptions(ctx, opts)
}

// Delete removes a brand by ID.
func (s *BrandService) Delete(ctx context.Context, id string) (bool, error) {
	return s.brands.Delete(ctx, id)
}

// websiteDomain derives the registrable domain (eTLD+1) from a website URL.
// Returns nil for a nil/empty website.
func websiteDomain(website *string) (*string, error) {
	if website == nil || strings.TrimSpace(*website) == "" {
		return nil, nil
	}
	u, err := url.Parse(strings.TrimSpace(*website))
	if err != nil {
		return nil, errors.New("website must be a valid URL")
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, errors.New("website must include a host")
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return nil, errors.New("website host has no registrable domain")
	}
	return &domain, nil
}

func mapBrandErr(err error) error {
	switch {
	case errors.Is(err, data.ErrBrandNotFound):
		return apperrors.NotFound("brand not found")
	case errors.Is(err, data.ErrBrandNameExists):
		return apperrors.Conflict("a brand with this name already exists")
	case errors.Is(err, data.ErrBrandDomainExists):
		return apperrors.Conflict("a brand with this website domain already exists")
	default:
		return err
	}
}
