package api

import (
	"alcyxob/workout-tracker/internal/repository"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Reserved query parameters shared by all list endpoints.
const (
	paramSelect = "select"
	paramSort   = "sort"
	paramPage   = "page"
	paramLimit  = "limit"
)

// fieldType tells the parser how to coerce a filter value. Coercion follows
// the stored type of the field, not the shape of the value: "45" on a string
// field stays the string "45" and can still match a string-typed document
// field.
type fieldType int

const (
	fieldString fieldType = iota
	fieldBool
	fieldNumber
	fieldDate
)

// parseListQuery turns the query string of a list request into a typed
// repository.ListQuery. Filter parameters take the forms `field=value` and
// `field[op]=value` with op one of gt, gte, lt, lte, in; `in` values are
// comma separated. Only fields named in the allow-list become filter
// conditions; anything else is ignored rather than passed to the database.
func parseListQuery(values url.Values, allowed map[string]fieldType) repository.ListQuery {
	q := repository.ListQuery{
		Page:  1,
		Limit: repository.DefaultLimit,
	}

	if page, err := strconv.Atoi(values.Get(paramPage)); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get(paramLimit)); err == nil && limit > 0 {
		q.Limit = limit
	}

	if sel := values.Get(paramSelect); sel != "" {
		for _, field := range strings.Split(sel, ",") {
			if field = strings.TrimSpace(field); field != "" {
				q.Select = append(q.Select, field)
			}
		}
	}

	if sort := values.Get(paramSort); sort != "" {
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			desc := strings.HasPrefix(field, "-")
			q.Sort = append(q.Sort, repository.SortField{
				Field: strings.TrimPrefix(field, "-"),
				Desc:  desc,
			})
		}
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		switch key {
		case paramSelect, paramSort, paramPage, paramLimit:
			continue
		}

		field, op := splitFilterKey(key)
		kind, ok := allowed[field]
		if !ok {
			continue
		}

		value := vals[0]
		if op == repository.OpIn {
			parts := strings.Split(value, ",")
			coerced := make([]any, 0, len(parts))
			for _, p := range parts {
				coerced = append(coerced, coerceValue(strings.TrimSpace(p), kind))
			}
			q.Conditions = append(q.Conditions, repository.Condition{Field: field, Op: op, Value: coerced})
			continue
		}

		q.Conditions = append(q.Conditions, repository.Condition{Field: field, Op: op, Value: coerceValue(value, kind)})
	}

	return q
}

// splitFilterKey parses `field[op]` bracket notation. A bare key or an
// unknown operator means an exact match.
func splitFilterKey(key string) (string, repository.CompareOp) {
	open := strings.Index(key, "[")
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, repository.OpEq
	}

	field := key[:open]
	switch repository.CompareOp(key[open+1 : len(key)-1]) {
	case repository.OpGt:
		return field, repository.OpGt
	case repository.OpGte:
		return field, repository.OpGte
	case repository.OpLt:
		return field, repository.OpLt
	case repository.OpLte:
		return field, repository.OpLte
	case repository.OpIn:
		return field, repository.OpIn
	}
	return field, repository.OpEq
}

// coerceValue converts a query string value to the BSON type of the target
// field. Values that don't parse as the declared type fall back to the raw
// string.
func coerceValue(s string, kind fieldType) any {
	switch kind {
	case fieldBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case fieldNumber:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case fieldDate:
		if t, err := parseDate(s); err == nil {
			return t
		}
	}
	return s
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
