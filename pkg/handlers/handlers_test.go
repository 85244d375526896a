package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, struct {
		ID int `json:"id"`
	}{ID: 42})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		logged  bool
		message string
	}{
		{"client error stays quiet", http.StatusNotFound, false, "prompt not found"},
		{"server error is logged", http.StatusBadGateway, true, "provider down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			rec := httptest.NewRecorder()

			handlers.RespondError(rec, logger, tt.status, errors.New(tt.message))

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.Equal(t, tt.logged, strings.Contains(buf.String(), tt.message))
		})
	}
}

func TestDecode(t *testing.T) {
	type command struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"valid", `{"name":"plain-draft"}`, "plain-draft", false},
		{"trailing whitespace", "{\"name\":\"x\"}\n", "x", false},
		{"malformed", `{"name":`, "", true},
		{"two values", `{"name":"a"}{"name":"b"}`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			got, err := handlers.Decode[command](req)
			if tt.wantErr {
				assert.ErrorIs(t, err, handlers.ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	var got uuid.UUID
	var gotErr error

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = handlers.PathUUID(r, "id")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id.String(), nil))
	require.NoError(t, gotErr)
	assert.Equal(t, id, got)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/nope", nil))
	assert.ErrorIs(t, gotErr, handlers.ErrInvalidID)
}
