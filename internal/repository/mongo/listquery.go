package mongo

import (
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildFilter translates the conditions of a ListQuery into a bson filter,
// merged with the ownership scope. Scope fields always win: a condition on a
// field the scope already constrains is dropped, so callers can never widen
// their visibility through filter parameters.
func buildFilter(scope bson.M, q repository.ListQuery) bson.M {
	filter := bson.M{}
	for k, v := range scope {
		filter[k] = v
	}

	for _, cond := range q.Conditions {
		if _, scoped := scope[cond.Field]; scoped {
			continue
		}
		switch cond.Op {
		case repository.OpEq:
			filter[cond.Field] = cond.Value
		case repository.OpGt:
			filter[cond.Field] = mergeRange(filter[cond.Field], "$gt", cond.Value)
		case repository.OpGte:
			filter[cond.Field] = mergeRange(filter[cond.Field], "$gte", cond.Value)
		case repository.OpLt:
			filter[cond.Field] = mergeRange(filter[cond.Field], "$lt", cond.Value)
		case repository.OpLte:
			filter[cond.Field] = mergeRange(filter[cond.Field], "$lte", cond.Value)
		case repository.OpIn:
			filter[cond.Field] = bson.M{"$in": cond.Value}
		}
	}
	return filter
}

// mergeRange lets gte and lte on the same field combine into one range doc.
func mergeRange(existing any, op string, value any) bson.M {
	if m, ok := existing.(bson.M); ok {
		m[op] = value
		return m
	}
	return bson.M{op: value}
}

// findOptions translates sort, projection and pagination of a ListQuery into
// mongo find options. defaultSort is used when the query specifies no sort
// (e.g. "-createdAt").
func findOptions(q repository.ListQuery, defaultSort repository.SortField) *options.FindOptions {
	sortFields := q.Sort
	if len(sortFields) == 0 {
		sortFields = []repository.SortField{defaultSort}
	}

	sort := bson.D{}
	for _, s := range sortFields {
		order := 1
		if s.Desc {
			order = -1
		}
		sort = append(sort, bson.E{Key: s.Field, Value: order})
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.LimitOrDefault()))

	if len(q.Select) > 0 {
		projection := bson.M{}
		for _, field := range q.Select {
			projection[field] = 1
		}
		opts.SetProjection(projection)
	}

	return opts
}
