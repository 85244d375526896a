package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func ptr(s string) *string { return &s }

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		require.NoError(t, cfg.Finalize(nil))
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "50")
		t.Setenv("TEST_MAX_PAGE", "200")

		cfg := pagination.Config{}
		require.NoError(t, cfg.Finalize(&pagination.ConfigEnv{
			DefaultPageSize: "TEST_PAGE_SIZE",
			MaxPageSize:     "TEST_MAX_PAGE",
		}))
		assert.Equal(t, pagination.Config{DefaultPageSize: 50, MaxPageSize: 200}, cfg)
	})
}

func TestConfigFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     pagination.Config
		wantErr string
	}{
		{"default exceeds max", pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}, "default_page_size cannot exceed max_page_size"},
		{"max too large", pagination.Config{DefaultPageSize: 20, MaxPageSize: 5000}, "max_page_size cannot exceed 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Finalize(nil), tt.wantErr)
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := defaultConfig()
	base.Merge(&pagination.Config{DefaultPageSize: 50})

	assert.Equal(t, 50, base.DefaultPageSize)
	assert.Equal(t, 100, base.MaxPageSize)
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name string
		req  pagination.PageRequest
		want pagination.PageRequest
	}{
		{"zero values get defaults", pagination.PageRequest{}, pagination.PageRequest{Page: 1, PageSize: 20}},
		{"negative page corrected", pagination.PageRequest{Page: -1, PageSize: 10}, pagination.PageRequest{Page: 1, PageSize: 10}},
		{"page size clamped", pagination.PageRequest{Page: 1, PageSize: 500}, pagination.PageRequest{Page: 1, PageSize: 100}},
		{"blank search dropped", pagination.PageRequest{Page: 2, PageSize: 5, Search: ptr("  ")}, pagination.PageRequest{Page: 2, PageSize: 5}},
		{"search trimmed", pagination.PageRequest{Page: 1, PageSize: 5, Search: ptr(" bim ")}, pagination.PageRequest{Page: 1, PageSize: 5, Search: ptr("bim")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(defaultConfig())
			assert.Equal(t, tt.want, tt.req)
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		page, pageSize, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
	}

	for _, tt := range tests {
		req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, req.Offset())
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"page":      {"2"},
			"page_size": {"15"},
			"search":    {"scan"},
			"sort":      {"term,-created_at"},
		}

		req := pagination.PageRequestFromQuery(values, defaultConfig())

		assert.Equal(t, 2, req.Page)
		assert.Equal(t, 15, req.PageSize)
		require.NotNil(t, req.Search)
		assert.Equal(t, "scan", *req.Search)
		assert.Equal(t, pagination.SortFields{
			{Field: "term"},
			{Field: "created_at", Descending: true},
		}, req.Sort)
	})

	t.Run("empty params get defaults", func(t *testing.T) {
		req := pagination.PageRequestFromQuery(url.Values{}, defaultConfig())

		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 20, req.PageSize)
		assert.Nil(t, req.Search)
		assert.Empty(t, req.Sort)
	})

	t.Run("malformed numbers fall back", func(t *testing.T) {
		values := url.Values{"page": {"two"}, "page_size": {"lots"}, "search": {""}}
		req := pagination.PageRequestFromQuery(values, defaultConfig())

		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 20, req.PageSize)
		assert.Nil(t, req.Search)
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name         string
		total, page  int
		wantPages    int
		wantNext     bool
		wantPrevious bool
	}{
		{"exact division", 100, 1, 5, true, false},
		{"remainder", 101, 6, 6, false, true},
		{"middle page", 60, 2, 3, true, true},
		{"single page", 5, 1, 1, false, false},
		{"empty result", 0, 1, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, tt.page, 20)

			assert.Equal(t, tt.wantPages, result.TotalPages)
			assert.Equal(t, tt.total, result.Total)
			assert.Equal(t, tt.page, result.Page)
			assert.Equal(t, 20, result.PageSize)
			assert.Equal(t, tt.wantNext, result.HasNext)
			assert.Equal(t, tt.wantPrevious, result.HasPrevious)
		})
	}
}

func TestNewPageResultNilDataBecomesEmpty(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	require.NotNil(t, result.Data)
	assert.Empty(t, result.Data)

	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"data":[]`)
}

func TestSortFieldsUnmarshal(t *testing.T) {
	want := pagination.SortFields{
		{Field: "name"},
		{Field: "created_at", Descending: true},
	}

	tests := []struct {
		name  string
		input string
	}{
		{"string", `"name,-created_at"`},
		{"array", `[{"field":"name"},{"field":"created_at","descending":true}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sf pagination.SortFields
			require.NoError(t, json.Unmarshal([]byte(tt.input), &sf))
			assert.Equal(t, want, sf)
		})
	}

	var sf pagination.SortFields
	assert.Error(t, json.Unmarshal([]byte(`42`), &sf))
}
