package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/module"
)

func body(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(text))
	}
}

func TestNewValidPrefix(t *testing.T) {
	for _, prefix := range []string{"/api", "/scalar", "/docs"} {
		t.Run(prefix, func(t *testing.T) {
			m := module.New(prefix, http.NewServeMux())
			assert.Equal(t, prefix, m.Prefix())
		})
	}
}

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				module.New(tt.prefix, http.NewServeMux())
			})
		})
	}
}

func TestServePrefixStripping(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"nested", "/api/briefs/generate", "/briefs/generate"},
		{"root", "/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received = r.URL.Path
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			m.Serve(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, received)
			assert.Equal(t, tt.path, req.URL.Path, "original request must not be mutated")
		})
	}
}

func TestModuleMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m := module.New("/api", body("ok"))
	m.Use(tag("outer"), tag("inner"))

	m.Serve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil))
	m.Serve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil))

	assert.Equal(t, []string{"outer", "inner", "outer", "inner"}, order)
}

func TestRouterDispatch(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /rules", body("api"))

	scalarMux := http.NewServeMux()
	scalarMux.HandleFunc("GET /", body("scalar"))

	router := module.NewRouter()
	require.NoError(t, router.Mount(module.New("/api", apiMux)))
	require.NoError(t, router.Mount(module.New("/scalar", scalarMux)))
	router.HandleNative("GET /healthz", body("ok"))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"api module", "/api/rules", "api"},
		{"scalar module", "/scalar", "scalar"},
		{"trailing slash", "/api/rules/", "api"},
		{"native fallback", "/healthz", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRouterDuplicateMount(t *testing.T) {
	router := module.NewRouter()
	require.NoError(t, router.Mount(module.New("/api", http.NewServeMux())))

	err := router.Mount(module.New("/api", http.NewServeMux()))
	assert.ErrorContains(t, err, "already mounted")
}

func TestRouterPrefixes(t *testing.T) {
	router := module.NewRouter()
	require.NoError(t, router.Mount(module.New("/scalar", http.NewServeMux())))
	require.NoError(t, router.Mount(module.New("/api", http.NewServeMux())))

	assert.Equal(t, []string{"/api", "/scalar"}, router.Prefixes())
}

func TestRouterTrailingSlashLeavesRequestIntact(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rules", body("api"))

	router := module.NewRouter()
	require.NoError(t, router.Mount(module.New("/api", mux)))

	req := httptest.NewRequest(http.MethodGet, "/api/rules/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "api", rec.Body.String())
	assert.Equal(t, "/api/rules/", req.URL.Path)
}
