// Package module mounts self-contained HTTP handlers under single-level path
// prefixes, each with its own middleware stack.
package module

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/middleware"
)

// Module serves one prefix. Requests reach the inner router with the prefix
// removed and pass through the module's middleware first.
type Module struct {
	prefix  string
	inner   http.Handler
	stack   middleware.System
	build   sync.Once
	wrapped http.Handler
}

// New panics unless prefix is a single segment such as "/api".
func New(prefix string, router http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, inner: router, stack: middleware.New()}
}

func (m *Module) Prefix() string { return m.prefix }

// Handler freezes the middleware stack on first call.
func (m *Module) Handler() http.Handler {
	m.build.Do(func() { m.wrapped = m.stack.Apply(m.inner) })
	return m.wrapped
}

func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, withPath(req, strings.TrimPrefix(req.URL.Path, m.prefix)))
}

// Use has no effect once Handler has been called.
func (m *Module) Use(mws ...middleware.Middleware) {
	for _, mw := range mws {
		m.stack.Use(mw)
	}
}

// withPath returns a shallow clone of req addressed to path.
func withPath(req *http.Request, path string) *http.Request {
	if path == "" {
		path = "/"
	}
	u := *req.URL
	u.Path, u.RawPath = path, ""

	out := req.Clone(req.Context())
	out.URL = &u
	return out
}

var errEmptyPrefix = errors.New("module prefix cannot be empty")

func checkPrefix(prefix string) error {
	if prefix == "" {
		return errEmptyPrefix
	}
	rest, ok := strings.CutPrefix(prefix, "/")
	if !ok {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Contains(rest, "/") {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}

