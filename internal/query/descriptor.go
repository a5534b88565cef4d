// Package query builds list queries from untrusted query-string parameters.
//
// A Descriptor is a plain value: skip/limit, ordered sort keys, a projection
// list and a conjunction of filter conditions. It carries no storage
// knowledge; the store renders it to SQL and executes it once.
//
//	d := query.New(base, r.URL.Query(), catalog.JobFilters).
//		Paginate().Sort().Select().Filter().
//		Descriptor()
package query

import "strings"

// SortKey is one ordering term.
type SortKey struct {
	Field string
	Desc  bool
}

// Condition is one AND-ed constraint on a field.
type Condition struct {
	Field  string
	Match  Match
	Value  string   // Equal, ContainsFold
	Values []string // AnyOf
}

func (c Condition) String() string {
	if c.Match == MatchAnyOf {
		return c.Field + " " + c.Match.String() + " " + strings.Join(c.Values, ",")
	}
	return c.Field + " " + c.Match.String() + " " + c.Value
}

// Descriptor is the accumulated, not-yet-executed query.
// Limit 0 means unlimited.
type Descriptor struct {
	Skip   int64
	Limit  int64
	Sort   []SortKey
	Fields []string
	Filter []Condition
}

// Where returns a copy of d with conds AND-ed onto the existing filter.
func (d Descriptor) Where(conds ...Condition) Descriptor {
	out := d.clone()
	out.Filter = append(out.Filter, conds...)
	return out
}

// Eq is shorthand for an equality condition.
func Eq(field, value string) Condition {
	return Condition{Field: field, Match: MatchEqual, Value: value}
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Sort = append([]SortKey(nil), d.Sort...)
	out.Fields = append([]string(nil), d.Fields...)
	out.Filter = nil
	for _, c := range d.Filter {
		c.Values = append([]string(nil), c.Values...)
		out.Filter = append(out.Filter, c)
	}
	return out
}
