package scraper

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"moviehub/pkg/database"
	"moviehub/pkg/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newTestDB(t))

	first := models.Movie{
		Title:            "Inception",
		Year:             intp(2010),
		ImdbRating:       floatp(8.8),
		TomatometerScore: intp(87),
		Genres:           []string{"Action"},
		SourceImdbURL:    "https://www.imdb.com/title/tt1375666/",
	}
	require.NoError(t, store.Upsert(ctx, first))

	// second pass: scores changed, secondary match lost
	second := first
	second.ImdbRating = floatp(8.7)
	second.TomatometerScore = nil
	require.NoError(t, store.Upsert(ctx, second))

	var count int
	require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&count))
	require.Equal(t, 1, count, "re-ingesting the same URL must overwrite, not duplicate")

	var rating float64
	var tomato sql.NullInt64
	require.NoError(t, store.DB.QueryRow(
		`SELECT imdb_rating, tomatometer_score FROM movies WHERE source_imdb_url = ?`,
		first.SourceImdbURL,
	).Scan(&rating, &tomato))
	require.Equal(t, 8.7, rating)
	require.False(t, tomato.Valid, "the second pass's absence must replace the first pass's value")
}

func TestUpsertAbsentFieldsStayNull(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newTestDB(t))

	require.NoError(t, store.Upsert(ctx, models.Movie{
		Title:         "Bare",
		SourceImdbURL: "https://www.imdb.com/title/tt0000001/",
	}))

	var (
		year    sql.NullInt64
		rating  sql.NullFloat64
		genres  string
		cast    string
		runtime sql.NullInt64
	)
	require.NoError(t, store.DB.QueryRow(`
		SELECT year, imdb_rating, genres, cast_list, runtime_minutes
		FROM movies WHERE source_imdb_url = ?
	`, "https://www.imdb.com/title/tt0000001/").Scan(&year, &rating, &genres, &cast, &runtime))

	require.False(t, year.Valid)
	require.False(t, rating.Valid)
	require.False(t, runtime.Valid)
	require.Equal(t, "[]", genres)
	require.Equal(t, "[]", cast)
}

func TestUpsertRejectsMissingKey(t *testing.T) {
	store := NewStore(newTestDB(t))
	err := store.Upsert(context.Background(), models.Movie{Title: "No URL"})
	require.Error(t, err)
}
