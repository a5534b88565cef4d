package catalog

import (
	"strings"
	"unicode"

	"jobmate/jobboard-service/internal/query"
)

// JobFilters is the allow-list of query-string keys accepted by job listings.
// Values are API field names; the store maps them to columns.
var JobFilters = query.FilterTable{
	"workingTime":     {Field: "workingTime", Match: query.MatchEqual},
	"jobLocation":     {Field: "location", Match: query.MatchEqual},
	"seniorityLevel":  {Field: "seniorityLevel", Match: query.MatchEqual},
	"jobTitle":        {Field: "title", Match: query.MatchContainsFold},
	"technicalSkills": {Field: "technicalSkills", Match: query.MatchAnyOf},
}

// Slug lower-cases s and joins its alphanumeric runs with '-'.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
