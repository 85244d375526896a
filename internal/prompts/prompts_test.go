package prompts_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/prompts"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{prompts.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("find: %w", prompts.ErrNotFound), http.StatusNotFound},
		{prompts.ErrDuplicate, http.StatusConflict},
		{engine.ErrInvalidStage, http.StatusBadRequest},
		{prompts.ErrMissingField, http.StatusBadRequest},
		{handlers.ErrInvalidBody, http.StatusBadRequest},
		{handlers.ErrInvalidID, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, prompts.MapHTTPStatus(tt.err))
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   prompts.Filters
	}{
		{
			"all filters",
			url.Values{"stage": {"rewrite"}, "name": {"tight"}, "active": {"true"}},
			prompts.Filters{Stage: ptr(engine.StageRewrite), Name: ptr("tight"), Active: ptr(true)},
		},
		{"unknown stage ignored", url.Values{"stage": {"classify"}}, prompts.Filters{}},
		{"invalid bool ignored", url.Values{"active": {"maybe"}}, prompts.Filters{}},
		{"empty", url.Values{}, prompts.Filters{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prompts.FiltersFromQuery(tt.values))
		})
	}
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     prompts.Command
		wantErr error
	}{
		{"valid", prompts.Command{Name: " a ", Stage: engine.StageDraft, Instructions: "b"}, nil},
		{"missing name", prompts.Command{Name: "  ", Stage: engine.StageDraft, Instructions: "b"}, prompts.ErrMissingField},
		{"missing stage", prompts.Command{Name: "a", Instructions: "b"}, engine.ErrInvalidStage},
		{"missing instructions", prompts.Command{Name: "a", Stage: engine.StageRewrite}, prompts.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, "a", tt.cmd.Name)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
