package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard-service/internal/query"
)

var jobFilters = query.FilterTable{
	"workingTime":     {Field: "workingTime", Match: query.MatchEqual},
	"jobLocation":     {Field: "location", Match: query.MatchEqual},
	"seniorityLevel":  {Field: "seniorityLevel", Match: query.MatchEqual},
	"jobTitle":        {Field: "title", Match: query.MatchContainsFold},
	"technicalSkills": {Field: "technicalSkills", Match: query.MatchAnyOf},
}

func build(raw string) query.Descriptor {
	params, _ := url.ParseQuery(raw)
	return query.New(query.Descriptor{}, params, jobFilters).
		Paginate().Sort().Select().Filter().
		Descriptor()
}

// ── Paginate ──────────────────────────────────────────────────────────────

func TestPaginate_DefaultsForInvalidInput(t *testing.T) {
	cases := []string{
		"",
		"page=0&size=0",
		"page=-1&size=-5",
		"page=abc&size=xyz",
		"page=1.5&size=2.5",
		"page=&size=",
		"page=99999999999&size=99999999999",
	}
	for _, raw := range cases {
		d := build(raw)
		assert.Equal(t, int64(0), d.Skip, "skip for %q", raw)
		assert.Equal(t, query.DefaultSize, d.Limit, "limit for %q", raw)
	}
}

func TestPaginate_SkipIsPageMinusOneTimesSize(t *testing.T) {
	cases := []struct {
		raw        string
		skip, size int64
	}{
		{"page=1&size=10", 0, 10},
		{"page=2&size=10", 10, 10},
		{"page=3&size=3", 6, 3},
		{"page=7", 18, 3},
		{"size=5", 0, 5},
		{"page=%204%20&size=2", 6, 2},
	}
	for _, c := range cases {
		d := build(c.raw)
		assert.Equal(t, c.skip, d.Skip, "skip for %q", c.raw)
		assert.Equal(t, c.size, d.Limit, "limit for %q", c.raw)
	}
}

func TestPaginate_InvalidPageKeepsValidSize(t *testing.T) {
	d := build("page=nope&size=4")
	assert.Equal(t, int64(0), d.Skip)
	assert.Equal(t, int64(4), d.Limit)
}

// ── Sort ──────────────────────────────────────────────────────────────────

func TestSort_AscendingThenDescending(t *testing.T) {
	d := build("sort=title,-createdAt")
	assert.Equal(t, []query.SortKey{
		{Field: "title"},
		{Field: "createdAt", Desc: true},
	}, d.Sort)
}

func TestSort_AbsentLeavesNaturalOrder(t *testing.T) {
	assert.Empty(t, build("").Sort)
	assert.Empty(t, build("sort=").Sort)
}

func TestSort_SkipsEmptyTerms(t *testing.T) {
	d := build("sort=,title,,-,%20-seniorityLevel")
	assert.Equal(t, []query.SortKey{
		{Field: "title"},
		{Field: "seniorityLevel", Desc: true},
	}, d.Sort)
}

// ── Select ────────────────────────────────────────────────────────────────

func TestSelect_InclusionList(t *testing.T) {
	d := build("select=title,location,title")
	assert.Equal(t, []string{"title", "location"}, d.Fields)
}

func TestSelect_AbsentMeansFullRecord(t *testing.T) {
	assert.Empty(t, build("page=2").Fields)
}

// ── Filter ────────────────────────────────────────────────────────────────

func TestFilter_IgnoresKeysOutsideAllowList(t *testing.T) {
	d := build("foo=bar&company=x&page=2&sort=title")
	assert.Empty(t, d.Filter)
}

func TestFilter_MatchersPerKey(t *testing.T) {
	d := build("jobTitle=eng&technicalSkills=python,%20go&workingTime=full-time&jobLocation=hybrid&seniorityLevel=Senior&foo=bar")
	require.Len(t, d.Filter, 5)

	// Sorted by query-string key.
	assert.Equal(t, query.Condition{Field: "location", Match: query.MatchEqual, Value: "hybrid"}, d.Filter[0])
	assert.Equal(t, query.Condition{Field: "title", Match: query.MatchContainsFold, Value: "eng"}, d.Filter[1])
	assert.Equal(t, query.Condition{Field: "seniorityLevel", Match: query.MatchEqual, Value: "Senior"}, d.Filter[2])
	assert.Equal(t, query.Condition{Field: "technicalSkills", Match: query.MatchAnyOf, Values: []string{"python", "go"}}, d.Filter[3])
	assert.Equal(t, query.Condition{Field: "workingTime", Match: query.MatchEqual, Value: "full-time"}, d.Filter[4])
}

func TestFilter_EmptyValuesAreIgnored(t *testing.T) {
	d := build("jobTitle=&technicalSkills=,,")
	assert.Empty(t, d.Filter)
}

func TestFilter_AugmentsBaseQuery(t *testing.T) {
	base := query.Descriptor{}.Where(query.Eq("company", "c1"))
	params := url.Values{"jobTitle": {"eng"}}

	d := query.New(base, params, jobFilters).Filter().Descriptor()
	require.Len(t, d.Filter, 2)
	assert.Equal(t, query.Eq("company", "c1"), d.Filter[0])
	assert.Equal(t, "title", d.Filter[1].Field)
}

// ── Immutability / composition ────────────────────────────────────────────

func TestBuilder_StepsDoNotMutateReceiver(t *testing.T) {
	params := url.Values{"page": {"2"}, "sort": {"title"}, "jobTitle": {"eng"}}
	b := query.New(query.Descriptor{}, params, jobFilters)

	_ = b.Paginate().Sort().Filter()
	d := b.Descriptor()
	assert.Equal(t, query.Descriptor{}, d)
}

func TestBuilder_OrderIndependent(t *testing.T) {
	params := url.Values{"page": {"2"}, "size": {"5"}, "sort": {"-title"}, "select": {"title"}, "jobTitle": {"eng"}}
	b := query.New(query.Descriptor{}, params, jobFilters)

	a := b.Paginate().Sort().Select().Filter().Descriptor()
	z := b.Filter().Select().Sort().Paginate().Descriptor()
	assert.Equal(t, a, z)
}

func TestDescriptor_WhereCopies(t *testing.T) {
	base := query.Descriptor{}.Where(query.Eq("a", "1"))
	_ = base.Where(query.Eq("b", "2"))
	assert.Len(t, base.Filter, 1)
}

func TestCondition_String(t *testing.T) {
	d := build("jobTitle=eng&technicalSkills=go,sql")
	require.Len(t, d.Filter, 2)
	assert.Equal(t, "title contains eng", d.Filter[0].String())
	assert.Equal(t, "technicalSkills any go,sql", d.Filter[1].String())
}

func TestMatch_String(t *testing.T) {
	assert.Equal(t, "eq", query.MatchEqual.String())
	assert.Equal(t, "contains", query.MatchContainsFold.String())
	assert.Equal(t, "any", query.MatchAnyOf.String())
}
