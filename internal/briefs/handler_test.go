package briefs_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/briefs"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/routes"
)

type mockSystem struct {
	generateFn func(ctx context.Context, cmd briefs.Command) (*engine.Result, error)
}

func (m *mockSystem) Handler(maxBodySize int64) *briefs.Handler {
	return briefs.NewHandler(m, discard(), maxBodySize)
}

func (m *mockSystem) Generate(ctx context.Context, cmd briefs.Command) (*engine.Result, error) {
	return m.generateFn(ctx, cmd)
}

func setupMux(sys briefs.System) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(1024).Routes())
	return mux
}

const validBody = `{"buyerType":"BP5","painPoint":"Rework_RFI","projectContext":"Adaptive reuse of a warehouse.","authorMode":"Fuller"}`

func TestHandlerExecutive(t *testing.T) {
	var captured briefs.Command
	sys := &mockSystem{
		generateFn: func(_ context.Context, cmd briefs.Command) (*engine.Result, error) {
			captured = cmd
			return &engine.Result{
				FinalOutput:     "final",
				InitialDraft:    "draft",
				ViolationsFound: []engine.Violation{},
				BuyerMode:       engine.ModePrincipal,
				AuthorMode:      engine.AuthorFuller,
				Clean:           true,
			}, nil
		},
	}

	req := httptest.NewRequest("POST", "/briefs/executive", strings.NewReader(validBody))
	req.Header.Set(briefs.UserHeader, " user-19 ")
	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, engine.BuyerArchitect, captured.BuyerType)
	assert.Equal(t, engine.PainRework, captured.PainPoint)
	assert.Equal(t, engine.AuthorFuller, captured.AuthorMode)
	assert.Equal(t, "user-19", captured.UserID)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	for _, key := range []string{"finalOutput", "initialDraft", "violationCount", "violationsFound", "rewriteAttempts", "processingTimeMs"} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, "data")
}

func TestHandlerExecutiveErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", fmt.Errorf("%w: projectContext too short", engine.ErrInvalidRequest), http.StatusBadRequest},
		{"rule store", fmt.Errorf("%w: timeout", briefs.ErrRuleStoreUnavailable), http.StatusServiceUnavailable},
		{"generation", fmt.Errorf("%w: empty output", engine.ErrGenerationFailed), http.StatusBadGateway},
		{"audit", fmt.Errorf("%w: bad json", engine.ErrAuditFailed), http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				generateFn: func(context.Context, briefs.Command) (*engine.Result, error) {
					return nil, tt.err
				},
			}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", "/briefs/executive", strings.NewReader(validBody)))

			assert.Equal(t, tt.want, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandlerExecutiveRejectsBody(t *testing.T) {
	called := false
	sys := &mockSystem{
		generateFn: func(context.Context, briefs.Command) (*engine.Result, error) {
			called = true
			return &engine.Result{}, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"buyerType":`, http.StatusBadRequest},
		{"too large", `{"projectContext":"` + strings.Repeat("x", 2048) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", "/briefs/executive", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.False(t, called)
}

func TestHandlerOptions(t *testing.T) {
	rec := httptest.NewRecorder()
	setupMux(&mockSystem{}).ServeHTTP(rec, httptest.NewRequest("GET", "/briefs/options", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var catalog engine.Catalog
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&catalog))
	assert.Len(t, catalog.BuyerTypes, 11)
	assert.Len(t, catalog.PainPoints, 4)
	assert.Len(t, catalog.AuthorModes, 2)
}

func TestMapHTTPStatusCancelled(t *testing.T) {
	assert.Equal(t, http.StatusRequestTimeout, briefs.MapHTTPStatus(context.Canceled))
}
