package query_test

import (
	"testing"
	"time"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
)

const selectRules = "SELECT r.id, r.rule_content, r.severity, r.created_at FROM public.governance_red_lines r"

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "governance_red_lines", "r").
		Project("id", "ID").
		Project("rule_content", "RuleContent").
		Project("severity", "Severity").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	if got, want := p.From(), "public.governance_red_lines r"; got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "r.id, r.rule_content, r.severity, r.created_at"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumn(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"view name", "RuleContent", "r.rule_content"},
		{"column name", "created_at", "r.created_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestProjectionMapLookup(t *testing.T) {
	p := testProjection()

	if col, ok := p.Lookup("Severity"); !ok || col != "r.severity" {
		t.Errorf("Lookup(Severity) = %q, %v", col, ok)
	}
	if col, ok := p.Lookup("severity"); !ok || col != "r.severity" {
		t.Errorf("Lookup(severity) = %q, %v", col, ok)
	}
	if _, ok := p.Lookup("1; DROP TABLE x"); ok {
		t.Error("Lookup() accepted an unprojected name")
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "severity", []query.SortField{{Field: "severity"}}},
		{"single descending", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{
			"multiple mixed with spaces",
			" -severity , created_at ",
			[]query.SortField{{Field: "severity", Descending: true}, {Field: "created_at"}},
		},
		{
			"empty parts skipped",
			"severity,,created_at",
			[]query.SortField{{Field: "severity"}, {Field: "created_at"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	if sql != selectRules {
		t.Errorf("Build() sql = %q, want %q", sql, selectRules)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Severity", 3)
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.governance_red_lines r WHERE r.severity = $1"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != 3 {
		t.Errorf("BuildCount() args = %v, want [3]", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.WhereContains("RuleContent", ptr("price"))
	sql, args := b.BuildPage(3, 25)

	wantSQL := selectRules + " WHERE r.rule_content ILIKE $1 ORDER BY r.created_at DESC LIMIT 25 OFFSET 50"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%price%" {
		t.Errorf("BuildPage() args = %v, want [%%price%%]", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc-123")

	wantSQL := selectRules + " WHERE r.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("BuildSingle() args = %v, want [abc-123]", args)
	}
}

func TestBuilderNilConditionsSkipped(t *testing.T) {
	var severity *int
	var after *time.Time

	b := query.NewBuilder(testProjection())
	b.WhereEquals("Severity", severity).
		WhereEquals("RuleContent", nil).
		WhereContains("RuleContent", nil).
		WhereContains("RuleContent", ptr("")).
		WhereSearch(nil, "RuleContent").
		WhereAtLeast("CreatedAt", after).
		WhereBefore("CreatedAt", nil)
	sql, args := b.Build()

	if sql != selectRules {
		t.Errorf("sql = %q, want %q", sql, selectRules)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(ptr("guarantee"), "RuleContent", "ID")
	sql, args := b.Build()

	wantSQL := selectRules + " WHERE (r.rule_content ILIKE $1 OR r.id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 || args[0] != "%guarantee%" || args[1] != "%guarantee%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuilderRange(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	b := query.NewBuilder(testProjection())
	b.WhereEquals("Severity", 3).
		WhereAtLeast("CreatedAt", &from).
		WhereBefore("CreatedAt", &to)
	sql, args := b.Build()

	wantSQL := selectRules + " WHERE r.severity = $1 AND r.created_at >= $2 AND r.created_at < $3"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
	if got := args[1].(*time.Time); !got.Equal(from) {
		t.Errorf("args[1] = %v, want %v", got, from)
	}
}

func TestBuilderOrderByFields(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "ID"})
	b.OrderByFields([]query.SortField{
		{Field: "severity", Descending: true},
		{Field: "CreatedAt"},
	})
	sql, _ := b.Build()

	wantSQL := selectRules + " ORDER BY r.severity DESC, r.created_at ASC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderOrderByIgnoresUnknownFields(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.OrderByFields([]query.SortField{
		{Field: "severity; DROP TABLE governance_red_lines"},
		{Field: "severity"},
	})
	sql, _ := b.Build()

	wantSQL := selectRules + " ORDER BY r.severity ASC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderOrderByAllUnknownFallsBackToDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	b.OrderByFields([]query.SortField{{Field: "bogus"}})
	sql, _ := b.Build()

	wantSQL := selectRules + " ORDER BY r.created_at DESC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderContainsEscapesWildcards(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereContains("RuleContent", ptr(`100%_off\`))
	_, args := b.Build()

	if len(args) != 1 || args[0] != `%100\%\_off\\%` {
		t.Errorf("args = %v, want escaped pattern", args)
	}
}

func TestBuilderBuildPageClampsFirstPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection()).BuildPage(0, 10)

	if want := selectRules + " LIMIT 10 OFFSET 0"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
