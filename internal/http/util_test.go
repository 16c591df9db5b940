package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimitOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 50, 0},
		{"explicit", "limit=25&offset=100", 25, 100},
		{"clamped to max", "limit=5000", 200, 0},
		{"zero limit floors to one", "limit=0", 1, 0},
		{"negative values", "limit=-5&offset=-10", 1, 0},
		{"garbage falls back", "limit=abc&offset=xyz", 50, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/perfumes?"+tc.query, nil)
			limit, offset := ParseLimitOffset(req, 50, 200)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestOptionalQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/perfumes?q=amber&padded=%20musk%20&blank=%20%20", nil)
	v := optionalQuery(req, "q")
	if assert.NotNil(t, v) {
		assert.Equal(t, "amber", *v)
	}
	if padded := optionalQuery(req, "padded"); assert.NotNil(t, padded) {
		assert.Equal(t, "musk", *padded)
	}
	assert.Nil(t, optionalQuery(req, "blank"), "whitespace-only values resolve to nil")
	assert.Nil(t, optionalQuery(req, "brand_id"))
}

func TestSafeRedirectPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/admin/dashboard", "/admin/dashboard"},
		{"/admin/perfumes?status=pending", "/admin/perfumes?status=pending"},
		{"https://evil.example/phish", "/"},
		{"//evil.example/phish", "/"},
		{"relative/path", "/"},
		{"javascript:alert(1)", "/"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, safeRedirectPath(tc.in), "in=%q", tc.in)
	}
}
