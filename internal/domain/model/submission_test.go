package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfumePayload(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(CreatePerfumeRequest{Name: "Chergui", BrandID: "b1"})
	require.NoError(t, err)
	return raw
}

func TestCreateSubmissionRequest_Validate(t *testing.T) {
	t.Parallel()

	target := "p1"

	tests := []struct {
		name    string
		req     CreateSubmissionRequest
		wantErr bool
	}{
		{
			name: "new perfume",
			req:  CreateSubmissionRequest{Kind: SubmissionKindNewPerfume, Payload: perfumePayload(t)},
		},
		{
			name: "kind is normalized",
			req:  CreateSubmissionRequest{Kind: " New_Perfume ", Payload: perfumePayload(t)},
		},
		{
			name:    "unknown kind",
			req:     CreateSubmissionRequest{Kind: "delete_perfume", Payload: perfumePayload(t)},
			wantErr: true,
		},
		{
			name:    "missing payload",
			req:     CreateSubmissionRequest{Kind: SubmissionKindNewPerfume},
			wantErr: true,
		},
		{
			name:    "edit without target",
			req:     CreateSubmissionRequest{Kind: SubmissionKindEditPerfume, Payload: json.RawMessage(`{"name":"x"}`)},
			wantErr: true,
		},
		{
			name: "edit with target",
			req:  CreateSubmissionRequest{Kind: SubmissionKindEditPerfume, TargetID: &target, Payload: json.RawMessage(`{"name":"Chergui Extrait"}`)},
		},
		{
			name:    "payload does not match kind",
			req:     CreateSubmissionRequest{Kind: SubmissionKindNewNote, Payload: json.RawMessage(`{"brand_id":"b1","name":"x"}`)},
			wantErr: true,
		},
		{
			name:    "payload fails nested validation",
			req:     CreateSubmissionRequest{Kind: SubmissionKindNewBrand, Payload: json.RawMessage(`{"name":""}`)},
			wantErr: true,
		},
		{
			name: "new note",
			req:  CreateSubmissionRequest{Kind: SubmissionKindNewNote, Payload: json.RawMessage(`{"name":"Bergamot","family":"citrus"}`)},
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

func TestReviewSubmissionRequest_Validate(t *testing.T) {
	t.Parallel()

	comment := "needs a source for the release year"
	long := strings.Repeat("a", 2001)
	blank := "   "

	assert.NoError(t, (&ReviewSubmissionRequest{Approve: true}).Validate())
	assert.NoError(t, (&ReviewSubmissionRequest{Approve: true, Comment: &comment}).Validate())
	assert.NoError(t, (&ReviewSubmissionRequest{Approve: false, Comment: &comment}).Validate())

	assert.Error(t, (&ReviewSubmissionRequest{Approve: false}).Validate(),
		"rejection without a comment must fail")
	assert.Error(t, (&ReviewSubmissionRequest{Approve: false, Comment: &blank}).Validate())
	assert.Error(t, (&ReviewSubmissionRequest{Approve: true, Comment: &long}).Validate())
}

func TestSubmissionKind_Valid(t *testing.T) {
	t.Parallel()

	for _, k := range []SubmissionKind{
		SubmissionKindNewPerfume, SubmissionKindEditPerfume, SubmissionKindNewBrand, SubmissionKindNewNote,
	} {
		assert.True(t, k.Valid(), "kind %s", k)
	}
	assert.False(t, SubmissionKind("delete_perfume").Valid())
	assert.False(t, SubmissionKind("").Valid())
}
