package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mychesstour/chesstour-api/query"
)

var compileToday = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestCompileFiltersAlwaysConstrainsStatus(t *testing.T) {
	preds := query.CompileFilters(&query.ListParams{}, compileToday)

	require.NotEmpty(t, preds)
	assert.Equal(t, query.Cond{Column: query.ColStatus, Op: query.OpEq, Value: "published"}, preds[0])
	assert.Len(t, preds, 1)
}

func TestCompileFiltersSearch(t *testing.T) {
	preds := query.CompileFilters(&query.ListParams{Search: "rapid open"}, compileToday)

	require.Len(t, preds, 2)
	assert.Equal(t, query.Or{Preds: []query.Predicate{
		query.Cond{Column: query.ColName, Op: query.OpContains, Value: "rapid open"},
		query.Cond{Column: query.ColVenueName, Op: query.OpContains, Value: "rapid open"},
	}}, preds[1])
}

func TestCompileFiltersFormat(t *testing.T) {
	t.Run("single value is a plain equality", func(t *testing.T) {
		preds := query.CompileFilters(&query.ListParams{Formats: []string{"blitz"}}, compileToday)
		require.Len(t, preds, 2)
		assert.Equal(t, query.Cond{Column: query.ColFormatType, Op: query.OpEq, Value: "blitz"}, preds[1])
	})

	t.Run("multiple values become a disjunction", func(t *testing.T) {
		preds := query.CompileFilters(&query.ListParams{Formats: []string{"blitz", "rapid"}}, compileToday)
		require.Len(t, preds, 2)
		assert.Equal(t, query.Or{Preds: []query.Predicate{
			query.Cond{Column: query.ColFormatType, Op: query.OpEq, Value: "blitz"},
			query.Cond{Column: query.ColFormatType, Op: query.OpEq, Value: "rapid"},
		}}, preds[1])
	})
}

func TestCompileFiltersState(t *testing.T) {
	preds := query.CompileFilters(&query.ListParams{States: []string{"Selangor", "Penang"}}, compileToday)
	require.Len(t, preds, 2)
	assert.Equal(t, query.In{Column: query.ColVenueState, Values: []string{"Selangor", "Penang"}}, preds[1])
}

func TestCompileFiltersRating(t *testing.T) {
	t.Run("fide only", func(t *testing.T) {
		preds := query.CompileFilters(&query.ListParams{RatingFIDE: true}, compileToday)
		require.Len(t, preds, 2)
		assert.Equal(t, query.Cond{Column: query.ColFIDERated, Op: query.OpEq, Value: "true"}, preds[1])
	})

	t.Run("both flags form a union, not an intersection", func(t *testing.T) {
		preds := query.CompileFilters(&query.ListParams{RatingFIDE: true, RatingMCF: true}, compileToday)
		require.Len(t, preds, 2)
		assert.Equal(t, query.Or{Preds: []query.Predicate{
			query.Cond{Column: query.ColFIDERated, Op: query.OpEq, Value: "true"},
			query.Cond{Column: query.ColMCFRated, Op: query.OpEq, Value: "true"},
		}}, preds[1])
	})
}

func TestCompileFiltersDateWindowAppended(t *testing.T) {
	preds := query.CompileFilters(&query.ListParams{Date: query.DateUpcoming}, compileToday)
	require.Len(t, preds, 2)
	assert.Equal(t, query.Cond{Column: query.ColStartDate, Op: query.OpGte, Value: "2026-03-01"}, preds[1])
}

func TestCursorBoundary(t *testing.T) {
	c := &query.Cursor{Value: "2026-03-15", ID: "t-20"}

	t.Run("ascending", func(t *testing.T) {
		got := query.CursorBoundary("start_date", false, c)
		assert.Equal(t, query.Or{Preds: []query.Predicate{
			query.Cond{Column: "start_date", Op: query.OpGt, Value: "2026-03-15"},
			query.And{Preds: []query.Predicate{
				query.Cond{Column: "start_date", Op: query.OpEq, Value: "2026-03-15"},
				query.Cond{Column: query.ColID, Op: query.OpGt, Value: "t-20"},
			}},
		}}, got)
	})

	t.Run("descending mirrors the comparison", func(t *testing.T) {
		got := query.CursorBoundary("start_date", true, c)
		assert.Equal(t, query.Or{Preds: []query.Predicate{
			query.Cond{Column: "start_date", Op: query.OpLt, Value: "2026-03-15"},
			query.And{Preds: []query.Predicate{
				query.Cond{Column: "start_date", Op: query.OpEq, Value: "2026-03-15"},
				query.Cond{Column: query.ColID, Op: query.OpLt, Value: "t-20"},
			}},
		}}, got)
	})
}

func TestBuildListSpec(t *testing.T) {
	t.Run("without cursor", func(t *testing.T) {
		p := &query.ListParams{Sort: "start_date", Order: "asc", Limit: 20}
		spec := query.BuildListSpec(p, compileToday)

		assert.Len(t, spec.Where, 1)
		assert.Equal(t, []query.OrderBy{
			{Column: "start_date", Desc: false},
			{Column: query.ColID, Desc: false},
		}, spec.OrderBy)
		// Overfetch на одну строку, чтобы определить has_more без count-запроса.
		assert.Equal(t, 21, spec.Limit)
	})

	t.Run("cursor boundary appended last, direction consistent", func(t *testing.T) {
		p := &query.ListParams{
			Sort:   "created_at",
			Order:  "desc",
			Limit:  10,
			Cursor: &query.Cursor{Value: "2026-01-01T00:00:00Z", ID: "t-5"},
		}
		spec := query.BuildListSpec(p, compileToday)

		require.Len(t, spec.Where, 2)
		boundary, ok := spec.Where[1].(query.Or)
		require.True(t, ok)
		assert.Equal(t, query.Cond{Column: "created_at", Op: query.OpLt, Value: "2026-01-01T00:00:00Z"}, boundary.Preds[0])

		assert.Equal(t, []query.OrderBy{
			{Column: "created_at", Desc: true},
			{Column: query.ColID, Desc: true},
		}, spec.OrderBy)
		assert.Equal(t, 11, spec.Limit)
	})
}
