package matchengine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDeduplicatesByID(t *testing.T) {
	search := func(ctx context.Context, query string, limit int) ([]Candidate, error) {
		return []Candidate{
			{ID: "a", Name: "First " + query},
			{ID: "b", Name: "Second"},
		}, nil
	}

	got := Collect(context.Background(), []string{"q1", "q2"}, search, 10, 50, testLogger())

	require.Len(t, got, 2)
	// First occurrence wins.
	assert.Equal(t, "First q1", got[0].Name)
	assert.Equal(t, "b", got[1].ID)
}

func TestCollectCapIsAdvisory(t *testing.T) {
	var calls int
	search := func(ctx context.Context, query string, limit int) ([]Candidate, error) {
		calls++
		batch := make([]Candidate, 4)
		for i := range batch {
			batch[i] = Candidate{ID: query + string(rune('a'+i)), Name: "x"}
		}
		return batch, nil
	}

	got := Collect(context.Background(), []string{"q1", "q2", "q3"}, search, 10, 5, testLogger())

	// The second query's results are kept in full even though they push
	// past the cap; the third query is never issued.
	assert.Len(t, got, 8)
	assert.Equal(t, 2, calls)
}

func TestCollectQueryFailureIsolated(t *testing.T) {
	search := func(ctx context.Context, query string, limit int) ([]Candidate, error) {
		if query == "boom" {
			return nil, errors.New("provider unavailable")
		}
		return []Candidate{{ID: query, Name: query}}, nil
	}

	got := Collect(context.Background(), []string{"boom", "ok"}, search, 10, 50, testLogger())

	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestCollectAllQueriesFail(t *testing.T) {
	search := func(ctx context.Context, query string, limit int) ([]Candidate, error) {
		return nil, errors.New("provider unavailable")
	}
	assert.Empty(t, Collect(context.Background(), []string{"a", "b"}, search, 10, 50, testLogger()))
}

func TestCollectNoQueries(t *testing.T) {
	search := func(ctx context.Context, query string, limit int) ([]Candidate, error) {
		t.Fatal("search must not be called without queries")
		return nil, nil
	}
	assert.Empty(t, Collect(context.Background(), nil, search, 10, 50, testLogger()))
}

func TestCollectSkipsCandidatesWithoutID(t *testing.T) {
	search := func(ctx context.Context, query string, limit int) ([]Candidate, error) {
		return []Candidate{{ID: "", Name: "ghost"}, {ID: "real", Name: "ok"}}, nil
	}

	got := Collect(context.Background(), []string{"q"}, search, 10, 50, testLogger())
	require.Len(t, got, 1)
	assert.Equal(t, "real", got[0].ID)
}
