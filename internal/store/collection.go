package store

import (
	"fmt"
	"strings"

	"jobmate/jobboard-service/internal/query"
)

// Column is how one API field maps to SQL.
type Column struct {
	Expr string // used in WHERE and ORDER BY
	Text bool   // project as text (uuid columns)
}

func (c Column) projection() string {
	if c.Text {
		return c.Expr + "::text"
	}
	return c.Expr
}

// Collection describes a listable source: the FROM clause and the fields a
// query.Descriptor may name. Fields not in Columns are dropped.
type Collection struct {
	From     string
	Columns  map[string]Column
	Order    []string // API fields, in projection order
	Fallback string   // ORDER BY used when the descriptor names no known sort field
	TieBreak string
}

// JobsCollection lists jobs joined with their company's name.
var JobsCollection = Collection{
	From: "jobs j JOIN companies c ON c.id = j.company",
	Columns: map[string]Column{
		"id":              {Expr: "j.id", Text: true},
		"title":           {Expr: "j.title"},
		"location":        {Expr: "j.location"},
		"workingTime":     {Expr: "j.working_time"},
		"seniorityLevel":  {Expr: "j.seniority_level"},
		"description":     {Expr: "j.description"},
		"technicalSkills": {Expr: "j.technical_skills"},
		"softSkills":      {Expr: "j.soft_skills"},
		"addedBy":         {Expr: "j.added_by", Text: true},
		"company":         {Expr: "j.company", Text: true},
		"companyName":     {Expr: "c.name"},
		"createdAt":       {Expr: "j.created_at"},
		"updatedAt":       {Expr: "j.updated_at"},
	},
	Order: []string{
		"id", "title", "location", "workingTime", "seniorityLevel", "description",
		"technicalSkills", "softSkills", "addedBy", "company", "companyName",
		"createdAt", "updatedAt",
	},
	Fallback: "j.created_at",
	TieBreak: "j.id",
}

// Render turns d into a SELECT statement and its arguments.
func (c Collection) Render(d query.Descriptor) (string, []any) {
	return c.render(strings.Join(c.projection(d.Fields), ", "), c.From, d)
}

// render is Render with a caller-supplied select list and FROM clause, for
// queries scanning whole records. from must bind the aliases used in Columns.
func (c Collection) render(selectList, from string, d query.Descriptor) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	b.WriteString("SELECT ")
	b.WriteString(selectList)
	b.WriteString(" FROM ")
	b.WriteString(from)

	var where []string
	for _, cond := range d.Filter {
		col, ok := c.Columns[cond.Field]
		if !ok {
			continue
		}
		switch cond.Match {
		case query.MatchEqual:
			where = append(where, col.Expr+" = "+arg(cond.Value))
		case query.MatchContainsFold:
			where = append(where, col.Expr+" ILIKE '%' || "+arg(escapeLike(cond.Value))+" || '%'")
		case query.MatchAnyOf:
			where = append(where, col.Expr+" && "+arg(cond.Values)+"::text[]")
		}
	}
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(c.orderBy(d.Sort), ", "))

	if d.Limit > 0 {
		b.WriteString(" LIMIT " + arg(d.Limit))
	}
	if d.Skip > 0 {
		b.WriteString(" OFFSET " + arg(d.Skip))
	}
	return b.String(), args
}

// projection always includes id; an empty or fully unknown field list
// projects every column.
func (c Collection) projection(fields []string) []string {
	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, ok := c.Columns[f]; ok {
			want[f] = true
		}
	}
	all := len(want) == 0

	out := make([]string, 0, len(c.Order))
	for _, f := range c.Order {
		if all || f == "id" || want[f] {
			out = append(out, fmt.Sprintf("%s AS %q", c.Columns[f].projection(), f))
		}
	}
	return out
}

func (c Collection) orderBy(keys []query.SortKey) []string {
	out := make([]string, 0, len(keys)+1)
	seen := make(map[string]bool, len(keys)+1)
	for _, k := range keys {
		col, ok := c.Columns[k.Field]
		if !ok || seen[col.Expr] {
			continue
		}
		seen[col.Expr] = true
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		out = append(out, col.Expr+" "+dir)
	}
	if len(out) == 0 && c.Fallback != "" {
		seen[c.Fallback] = true
		out = append(out, c.Fallback+" ASC")
	}
	if c.TieBreak != "" && !seen[c.TieBreak] {
		out = append(out, c.TieBreak+" ASC")
	}
	return out
}

// escapeLike escapes LIKE metacharacters so the value matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
