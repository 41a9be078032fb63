package api

import (
	"alcyxob/workout-tracker/internal/repository"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAllowed = map[string]fieldType{
	"name":     fieldString,
	"duration": fieldNumber,
	"date":     fieldDate,
	"category": fieldString,
	"isCustom": fieldBool,
}

func findCondition(t *testing.T, conds []repository.Condition, field string) repository.Condition {
	t.Helper()
	for _, c := range conds {
		if c.Field == field {
			return c
		}
	}
	t.Fatalf("no condition for field %q", field)
	return repository.Condition{}
}

func TestParseListQueryDefaults(t *testing.T) {
	q := parseListQuery(url.Values{}, testAllowed)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, repository.DefaultLimit, q.Limit)
	assert.Empty(t, q.Conditions)
	assert.Empty(t, q.Sort)
	assert.Empty(t, q.Select)
}

func TestParseListQueryPagination(t *testing.T) {
	values := url.Values{"page": {"3"}, "limit": {"25"}}
	q := parseListQuery(values, testAllowed)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
}

func TestParseListQueryIgnoresBadPagination(t *testing.T) {
	values := url.Values{"page": {"-1"}, "limit": {"abc"}}
	q := parseListQuery(values, testAllowed)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, repository.DefaultLimit, q.Limit)
}

func TestParseListQuerySort(t *testing.T) {
	values := url.Values{"sort": {"-createdAt,name"}}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Sort, 2)
	assert.Equal(t, repository.SortField{Field: "createdAt", Desc: true}, q.Sort[0])
	assert.Equal(t, repository.SortField{Field: "name", Desc: false}, q.Sort[1])
}

func TestParseListQuerySelect(t *testing.T) {
	values := url.Values{"select": {"name, category"}}
	q := parseListQuery(values, testAllowed)

	assert.Equal(t, []string{"name", "category"}, q.Select)
}

func TestParseListQueryEqualsCondition(t *testing.T) {
	values := url.Values{"name": {"Bench Press"}}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, repository.Condition{Field: "name", Op: repository.OpEq, Value: "Bench Press"}, q.Conditions[0])
}

func TestParseListQueryBracketOperators(t *testing.T) {
	values := url.Values{
		"duration[gte]": {"30"},
		"duration[lte]": {"60"},
	}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Conditions, 2)
	gte := findCondition(t, q.Conditions, "duration")
	assert.Contains(t, []repository.CompareOp{repository.OpGte, repository.OpLte}, gte.Op)
	for _, c := range q.Conditions {
		assert.Equal(t, "duration", c.Field)
		assert.IsType(t, int64(0), c.Value)
	}
}

func TestParseListQueryInOperator(t *testing.T) {
	values := url.Values{"category[in]": {"strength,cardio"}}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, repository.OpIn, q.Conditions[0].Op)
	assert.Equal(t, []any{"strength", "cardio"}, q.Conditions[0].Value)
}

func TestParseListQueryUnknownFieldIgnored(t *testing.T) {
	values := url.Values{
		"passwordHash": {"x"},
		"user":         {"someid"},
		"name":         {"Squat"},
	}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "name", q.Conditions[0].Field)
}

func TestParseListQueryUnknownOperatorIsEquality(t *testing.T) {
	values := url.Values{"name[regex]": {".*"}}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, repository.OpEq, q.Conditions[0].Op)
}

func TestParseListQueryValueCoercion(t *testing.T) {
	values := url.Values{
		"isCustom":  {"true"},
		"duration":  {"45"},
		"date[gte]": {"2025-01-15"},
	}
	q := parseListQuery(values, testAllowed)

	assert.Equal(t, true, findCondition(t, q.Conditions, "isCustom").Value)
	assert.Equal(t, int64(45), findCondition(t, q.Conditions, "duration").Value)

	date := findCondition(t, q.Conditions, "date").Value
	want, _ := time.Parse("2006-01-02", "2025-01-15")
	assert.Equal(t, want, date)
}

func TestParseListQueryStringFieldKeepsNumericValue(t *testing.T) {
	// "45" on a string field must stay a string or it can never match.
	values := url.Values{"name": {"45"}}
	q := parseListQuery(values, testAllowed)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "45", q.Conditions[0].Value)
}

func TestParseListQueryUnparsableTypedValueFallsBack(t *testing.T) {
	values := url.Values{
		"duration": {"lots"},
		"isCustom": {"maybe"},
	}
	q := parseListQuery(values, testAllowed)

	assert.Equal(t, "lots", findCondition(t, q.Conditions, "duration").Value)
	assert.Equal(t, "maybe", findCondition(t, q.Conditions, "isCustom").Value)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2025-06-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parseDate("not-a-date")
	assert.Error(t, err)
}
