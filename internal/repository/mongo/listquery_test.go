package mongo

import (
	"alcyxob/workout-tracker/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterMergesScope(t *testing.T) {
	userID := primitive.NewObjectID()
	scope := bson.M{"user": userID}

	q := repository.ListQuery{Conditions: []repository.Condition{
		{Field: "category", Op: repository.OpEq, Value: "strength"},
	}}

	filter := buildFilter(scope, q)

	assert.Equal(t, userID, filter["user"])
	assert.Equal(t, "strength", filter["category"])
}

func TestBuildFilterScopeWins(t *testing.T) {
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	scope := bson.M{"user": userID}

	// A filter on a scoped field must not widen visibility.
	q := repository.ListQuery{Conditions: []repository.Condition{
		{Field: "user", Op: repository.OpEq, Value: otherID},
	}}

	filter := buildFilter(scope, q)

	assert.Equal(t, userID, filter["user"])
}

func TestBuildFilterCombinesRange(t *testing.T) {
	q := repository.ListQuery{Conditions: []repository.Condition{
		{Field: "duration", Op: repository.OpGte, Value: int64(30)},
		{Field: "duration", Op: repository.OpLte, Value: int64(60)},
	}}

	filter := buildFilter(bson.M{}, q)

	assert.Equal(t, bson.M{"$gte": int64(30), "$lte": int64(60)}, filter["duration"])
}

func TestBuildFilterScopedRangeWindow(t *testing.T) {
	userID := primitive.NewObjectID()

	// Both bounds of a date window must survive alongside the scope.
	q := repository.ListQuery{Conditions: []repository.Condition{
		{Field: "date", Op: repository.OpGte, Value: "2025-01-01"},
		{Field: "date", Op: repository.OpLte, Value: "2025-02-01"},
	}}

	filter := buildFilter(bson.M{"user": userID}, q)

	assert.Equal(t, userID, filter["user"])
	assert.Equal(t, bson.M{"$gte": "2025-01-01", "$lte": "2025-02-01"}, filter["date"])
}

func TestBuildFilterIn(t *testing.T) {
	q := repository.ListQuery{Conditions: []repository.Condition{
		{Field: "category", Op: repository.OpIn, Value: []any{"strength", "cardio"}},
	}}

	filter := buildFilter(bson.M{}, q)

	assert.Equal(t, bson.M{"$in": []any{"strength", "cardio"}}, filter["category"])
}

func TestFindOptionsDefaults(t *testing.T) {
	opts := findOptions(repository.ListQuery{}, repository.SortField{Field: "createdAt", Desc: true})

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
	assert.Equal(t, int64(0), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Nil(t, opts.Projection)
}

func TestFindOptionsSortAndProjection(t *testing.T) {
	q := repository.ListQuery{
		Sort:   []repository.SortField{{Field: "name"}, {Field: "createdAt", Desc: true}},
		Select: []string{"name", "category"},
		Page:   2,
		Limit:  5,
	}

	opts := findOptions(q, repository.SortField{Field: "createdAt", Desc: true})

	assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "createdAt", Value: -1}}, opts.Sort)
	assert.Equal(t, int64(5), *opts.Skip)
	assert.Equal(t, int64(5), *opts.Limit)
	assert.Equal(t, bson.M{"name": 1, "category": 1}, opts.Projection)
}
