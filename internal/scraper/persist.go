package scraper

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"moviehub/pkg/models"
)

// Store persists canonical movie records keyed by their IMDb detail URL.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Upsert writes the full record under its natural key. Every column is
// overwritten on conflict so no field from a previous ingestion pass can
// linger; re-running a batch over the same URLs is the supported recovery
// path and must converge on the latest scrape.
func (s *Store) Upsert(ctx context.Context, m models.Movie) error {
	if m.SourceImdbURL == "" {
		return fmt.Errorf("upsert: empty source_imdb_url for %q", m.Title)
	}

	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	cast := m.Cast
	if cast == nil {
		cast = []models.CastMember{}
	}

	genresJSON, err := json.Marshal(genres)
	if err != nil {
		return fmt.Errorf("marshal genres for %s: %w", m.SourceImdbURL, err)
	}
	castJSON, err := json.Marshal(cast)
	if err != nil {
		return fmt.Errorf("marshal cast for %s: %w", m.SourceImdbURL, err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO movies (
		  source_imdb_url, title, year, imdb_rating, tomatometer_score,
		  audience_score, director, poster_url, plot_summary, genres,
		  runtime_minutes, cast_list, rotten_tomatoes_url
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_imdb_url) DO UPDATE SET
		  title = excluded.title,
		  year = excluded.year,
		  imdb_rating = excluded.imdb_rating,
		  tomatometer_score = excluded.tomatometer_score,
		  audience_score = excluded.audience_score,
		  director = excluded.director,
		  poster_url = excluded.poster_url,
		  plot_summary = excluded.plot_summary,
		  genres = excluded.genres,
		  runtime_minutes = excluded.runtime_minutes,
		  cast_list = excluded.cast_list,
		  rotten_tomatoes_url = excluded.rotten_tomatoes_url
	`,
		m.SourceImdbURL,
		m.Title,
		m.Year,
		m.ImdbRating,
		m.TomatometerScore,
		m.AudienceScore,
		m.Director,
		m.PosterURL,
		m.PlotSummary,
		string(genresJSON),
		m.RuntimeMinutes,
		string(castJSON),
		m.RottenTomatoesURL,
	)
	if err != nil {
		return fmt.Errorf("exec upsert for %s: %w", m.SourceImdbURL, err)
	}
	return nil
}
