package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// BrandServiceInterface is the slice of the brand service handlers consume.
type BrandServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error)
	Update(ctx context.Context, id string, req model.UpdateBrandRequest) (*model.Brand, error)
	GetByID(ctx context.Context, id string) (*model.Brand, error)
	List(ctx context.Context, opts model.BrandsListOptions) ([]*model.Brand, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BrandHandlerOptions groups dependencies for BrandHandler.
type BrandHandlerOptions struct {
	Brands BrandServiceInterface
	Logger *slog.Logger
}

// BrandHandler serves the brand endpoints.
type BrandHandler struct {
	brands BrandServiceInterface
	logger *slog.Logger
}

// NewBrandHandler constructs a BrandHandler.
func NewBrandHandler(opts BrandHandlerOptions) *BrandHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BrandHandler{brands: opts.Brands, logger: logger}
}

// List handles GET /api/brands.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	brands, err := h.brands.List(r.Context(), model.BrandsListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, brands)
}

// Get handles GET /api/brands/{id}.
func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	brand, err := h.brands.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, brand)
}

// Create handles POST /api/brands.
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBrandRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	brand, err := h.brands.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, brand)
}

// Update handles PATCH /api/brands/{id}.
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateBrandRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	brand, err := h.brands.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, brand)
}

// Delete handles DELETE /api/brands/{id}.
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.brands.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: apperrors.NotFound("brand not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
