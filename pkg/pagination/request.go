// Package pagination carries list requests and paged results between the
// HTTP handlers and the repositories.
package pagination

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
)

// SortFields decodes from either "name,-created_at" or a JSON array of SortField.
type SortFields []query.SortField

func (s *SortFields) UnmarshalJSON(data []byte) error {
	var expr string
	if json.Unmarshal(data, &expr) == nil {
		*s = query.ParseSortFields(expr)
		return nil
	}
	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest asks for one 1-based page of a list.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize brings the request inside cfg's limits. A zero or negative page
// size means the default; a blank search means no search.
func (r *PageRequest) Normalize(cfg Config) {
	r.Page = max(r.Page, 1)
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)

	if r.Search == nil {
		return
	}
	if term := strings.TrimSpace(*r.Search); term != "" {
		r.Search = &term
	} else {
		r.Search = nil
	}
}

func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery reads page, page_size, search and sort from values.
// Unparseable numbers are treated as absent.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(values.Get(key))
		return n
	}

	req := PageRequest{
		Page:     atoi("page"),
		PageSize: atoi("page_size"),
		Sort:     query.ParseSortFields(values.Get("sort")),
	}
	if values.Has("search") {
		term := values.Get("search")
		req.Search = &term
	}
	req.Normalize(cfg)
	return req
}
