package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePerfumeRequest_Validate(t *testing.T) {
	t.Parallel()

	year := 1992
	badYear := 1600
	futureYear := time.Now().Year() + 2

	tests := []struct {
		name    string
		req     CreatePerfumeRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreatePerfumeRequest{Name: "Féminité du Bois", BrandID: "b1", Concentration: ConcentrationEauDeParfum, ReleaseYear: &year},
		},
		{
			name:    "missing name",
			req:     CreatePerfumeRequest{BrandID: "b1"},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			req:     CreatePerfumeRequest{Name: "   ", BrandID: "b1"},
			wantErr: true,
		},
		{
			name:    "name too long",
			req:     CreatePerfumeRequest{Name: strings.Repeat("a", 256), BrandID: "b1"},
			wantErr: true,
		},
		{
			name:    "missing brand",
			req:     CreatePerfumeRequest{Name: "Chergui"},
			wantErr: true,
		},
		{
			name:    "invalid concentration",
			req:     CreatePerfumeRequest{Name: "Chergui", BrandID: "b1", Concentration: "attar"},
			wantErr: true,
		},
		{
			name:    "release year too early",
			req:     CreatePerfumeRequest{Name: "Chergui", BrandID: "b1", ReleaseYear: &badYear},
			wantErr: true,
		},
		{
			name:    "release year too far out",
			req:     CreatePerfumeRequest{Name: "Chergui", BrandID: "b1", ReleaseYear: &futureYear},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePerfumeRequest_Validate_DefaultsConcentration(t *testing.T) {
	t.Parallel()

	req := CreatePerfumeRequest{Name: "Chergui", BrandID: "b1"}
	require.NoError(t, req.Validate())
	assert.Equal(t, ConcentrationEauDeParfum, req.Concentration)

	// Mixed case is normalized.
	req = CreatePerfumeRequest{Name: "Chergui", BrandID: "b1", Concentration: " Eau_De_Toilette "}
	require.NoError(t, req.Validate())
	assert.Equal(t, ConcentrationEauDeToilette, req.Concentration)
}

func TestUpdatePerfumeRequest_Validate(t *testing.T) {
	t.Parallel()

	empty := ""
	name := "Chergui"
	badConc := Concentration("attar")

	assert.Error(t, (&UpdatePerfumeRequest{}).Validate(), "empty update must fail")
	assert.Error(t, (&UpdatePerfumeRequest{Name: &empty}).Validate())
	assert.Error(t, (&UpdatePerfumeRequest{BrandID: &empty}).Validate())
	assert.Error(t, (&UpdatePerfumeRequest{Concentration: &badConc}).Validate())
	assert.NoError(t, (&UpdatePerfumeRequest{Name: &name}).Validate())

	// Setting only a pyramid level counts as an update.
	assert.NoError(t, (&UpdatePerfumeRequest{TopNoteIDs: []string{"n1"}}).Validate())
}

func TestParseCatalogStatus(t *testing.T) {
	t.Parallel()

	s, ok := ParseCatalogStatus(" Pending ")
	assert.True(t, ok)
	assert.Equal(t, CatalogStatusPending, s)

	_, ok = ParseCatalogStatus("archived")
	assert.False(t, ok)
}
