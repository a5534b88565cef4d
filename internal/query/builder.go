package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query-string keys consumed by the builder itself.
const (
	ParamPage   = "page"
	ParamSize   = "size"
	ParamSort   = "sort"
	ParamSelect = "select"
)

// Pagination defaults, applied when page/size are absent, malformed or not
// positive.
const (
	DefaultPage int64 = 1
	DefaultSize int64 = 3
)

var reserved = map[string]struct{}{
	ParamPage: {}, ParamSize: {}, ParamSort: {}, ParamSelect: {},
}

// Builder applies query-string parameters to a base Descriptor.
// Every step returns a new Builder; the receiver is never modified, so a
// Builder may be shared and its steps may be called in any order.
// No step ever fails: invalid input falls back to a default or a no-op.
type Builder struct {
	d       Descriptor
	params  url.Values
	filters FilterTable
}

// New starts a builder over base. filters is the allow-list used by Filter.
func New(base Descriptor, params url.Values, filters FilterTable) Builder {
	return Builder{d: base.clone(), params: params, filters: filters}
}

// Paginate sets Skip and Limit from page and size.
func (b Builder) Paginate() Builder {
	page := positiveOr(b.params.Get(ParamPage), DefaultPage)
	size := positiveOr(b.params.Get(ParamSize), DefaultSize)

	out := b.with()
	out.d.Skip = (page - 1) * size
	out.d.Limit = size
	return out
}

// Sort appends sort keys from a comma-separated list such as
// "title,-createdAt"; a leading '-' means descending.
func (b Builder) Sort() Builder {
	raw := b.params.Get(ParamSort)
	if strings.TrimSpace(raw) == "" {
		return b
	}
	out := b.with()
	for _, term := range splitList(raw) {
		desc := strings.HasPrefix(term, "-")
		field := strings.TrimSpace(strings.TrimPrefix(term, "-"))
		if field == "" {
			continue
		}
		out.d.Sort = append(out.d.Sort, SortKey{Field: field, Desc: desc})
	}
	return out
}

// Select sets the projection from a comma-separated field list.
func (b Builder) Select() Builder {
	fields := splitList(b.params.Get(ParamSelect))
	if len(fields) == 0 {
		return b
	}
	out := b.with()
	out.d.Fields = fields
	return out
}

// Filter AND-s one condition per allow-listed, non-empty parameter onto the
// existing filter. Conditions are added in sorted key order so the rendered
// query is deterministic.
func (b Builder) Filter() Builder {
	keys := make([]string, 0, len(b.params))
	for k := range b.params {
		if _, skip := reserved[k]; skip {
			continue
		}
		if _, ok := b.filters[k]; !ok {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return b
	}
	sort.Strings(keys)

	out := b.with()
	for _, k := range keys {
		if c, ok := b.filters[k].condition(b.params.Get(k)); ok {
			out.d.Filter = append(out.d.Filter, c)
		}
	}
	return out
}

// Descriptor returns the configured query.
func (b Builder) Descriptor() Descriptor {
	return b.d.clone()
}

func (b Builder) with() Builder {
	b.d = b.d.clone()
	return b
}

// positiveOr parses raw as a positive 32-bit integer, returning def for
// anything else.
func positiveOr(raw string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
