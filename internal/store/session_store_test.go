package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/lookbook/internal/db"
	"github.com/vbonduro/lookbook/internal/domain"
	"github.com/vbonduro/lookbook/internal/gallery"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func comment(id, imageID, text string, at time.Time) domain.Comment {
	return domain.Comment{ID: id, ImageID: imageID, Author: "Anna", Text: text, CreatedAt: at}
}

func TestSessionStoreLoadUnknown(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	st, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, st.Ratings)
	assert.Empty(t, st.Comments)
}

func TestSessionStoreSaveAndLoad(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := store.Save(ctx, "s1", gallery.State{
		Ratings: map[string]int{"outfit-01": 5, "outfit-02": 2},
		Comments: []domain.Comment{
			comment("c2", "outfit-01", "zweiter", at.Add(time.Minute)),
			comment("c1", "outfit-01", "erster", at),
		},
	})
	require.NoError(t, err)

	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"outfit-01": 5, "outfit-02": 2}, st.Ratings)
	require.Len(t, st.Comments, 2)
	// Insertion order wins over timestamps.
	assert.Equal(t, "c2", st.Comments[0].ID)
	assert.Equal(t, "c1", st.Comments[1].ID)
	assert.True(t, at.Equal(st.Comments[1].CreatedAt))
}

func TestSessionStoreSaveIsIdempotent(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()
	at := time.Now().UTC()

	first := gallery.State{
		Ratings:  map[string]int{"outfit-01": 4},
		Comments: []domain.Comment{comment("c1", "outfit-01", "schön", at)},
	}
	require.NoError(t, store.Save(ctx, "s1", first))
	require.NoError(t, store.Save(ctx, "s1", first))

	// A later save cannot overwrite a stored rating.
	second := gallery.State{
		Ratings: map[string]int{"outfit-01": 1, "outfit-03": 3},
		Comments: []domain.Comment{
			comment("c1", "outfit-01", "schön", at),
			comment("c2", "outfit-03", "naja", at),
		},
	}
	require.NoError(t, store.Save(ctx, "s1", second))

	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"outfit-01": 4, "outfit-03": 3}, st.Ratings)
	assert.Len(t, st.Comments, 2)
}

func TestSessionStoreSessionsAreIsolated(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", gallery.State{Ratings: map[string]int{"outfit-01": 5}}))
	require.NoError(t, store.Save(ctx, "s2", gallery.State{Ratings: map[string]int{"outfit-02": 1}}))

	st, err := store.Load(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"outfit-02": 1}, st.Ratings)
}

func TestSessionStoreSaveRejectsInvalidRating(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()

	err := store.Save(ctx, "s1", gallery.State{Ratings: map[string]int{"outfit-01": 9}})
	assert.Error(t, err)

	// The transaction rolled back, so not even the session row exists.
	sum, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Sessions)
}

func TestSessionStoreSummary(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, store.Save(ctx, "s1", gallery.State{
		Ratings:  map[string]int{"outfit-01": 5, "outfit-02": 2},
		Comments: []domain.Comment{comment("c1", "outfit-03", "hm", at)},
	}))
	require.NoError(t, store.Save(ctx, "s2", gallery.State{
		Ratings: map[string]int{"outfit-01": 4},
	}))

	sum, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Sessions)
	assert.Equal(t, 3, sum.Ratings)
	assert.Equal(t, 1, sum.Comments)
	assert.Equal(t, []domain.ImageStats{
		{ImageID: "outfit-01", Ratings: 2, Average: 4.5},
		{ImageID: "outfit-02", Ratings: 1, Average: 2},
		{ImageID: "outfit-03", Comments: 1},
	}, sum.Images)
}

func TestSessionStoreSummaryEmpty(t *testing.T) {
	store := NewSessionStore(openTestDB(t))

	sum, err := store.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Summary{}, sum)
}
