package movies

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"moviehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// FilterQuery is the conjunctive filter shared by the plain sort path and
// the discrepancy ranking. Nil means the predicate is not applied.
type FilterQuery struct {
	Genre     string
	MinRating *float64
	MinYear   *int
	SortBy    string // one of sortColumns keys
	Order     string // "asc" or "desc"
}

// sortColumns maps API sort keys to stored columns. "discrepancy" is not
// here on purpose: it has no column and goes through FilterByDiscrepancy.
var sortColumns = map[string]string{
	"rating":      "imdb_rating",
	"tomatometer": "tomatometer_score",
	"audience":    "audience_score",
	"year":        "year",
	"runtime":     "runtime_minutes",
}

const movieColumns = `
	source_imdb_url, title, year, imdb_rating, tomatometer_score,
	audience_score, director, poster_url, plot_summary, genres,
	runtime_minutes, cast_list, rotten_tomatoes_url`

// List returns records in storage (insertion) order with pagination.
func (r *Repo) List(ctx context.Context, skip, limit int) ([]models.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY rowid
		LIMIT ? OFFSET ?
	`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	return collectMovies(rows)
}

// SearchByTitle does a case-insensitive substring match on title.
func (r *Repo) SearchByTitle(ctx context.Context, title string) ([]models.Movie, error) {
	kw := "%" + strings.ToLower(strings.TrimSpace(title)) + "%"
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE LOWER(title) LIKE ?
		ORDER BY rowid
	`, kw)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	return collectMovies(rows)
}

// Filter applies the conjunctive predicates and a stored-column sort.
func (r *Repo) Filter(ctx context.Context, q FilterQuery) ([]models.Movie, error) {
	where, args := buildWhere(q)

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "imdb_rating"
	}
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}

	sqlStr := `SELECT ` + movieColumns + ` FROM movies` + where +
		fmt.Sprintf(" ORDER BY %s %s", col, dir)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("filter query: %w", err)
	}
	return collectMovies(rows)
}

// RankedMovie is a movie with its computed score discrepancy.
type RankedMovie struct {
	models.Movie
	Discrepancy float64 `json:"discrepancy"`
}

// FilterByDiscrepancy applies the same predicates as Filter, then computes
// abs(imdb_rating*10 - tomatometer_score) per record and sorts by it. The
// sort key does not exist in storage, so records are pulled and ranked
// here; rows missing either score are excluded up front since their
// discrepancy is undefined.
func (r *Repo) FilterByDiscrepancy(ctx context.Context, q FilterQuery) ([]RankedMovie, error) {
	where, args := buildWhere(q)
	if where == "" {
		where = " WHERE imdb_rating IS NOT NULL AND tomatometer_score IS NOT NULL"
	} else {
		where += " AND imdb_rating IS NOT NULL AND tomatometer_score IS NOT NULL"
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("discrepancy query: %w", err)
	}
	candidates, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedMovie, 0, len(candidates))
	for _, m := range candidates {
		normalized := *m.ImdbRating * 10 // rescale 0-10 to the 0-100 tomatometer scale
		ranked = append(ranked, RankedMovie{
			Movie:       m,
			Discrepancy: math.Abs(normalized - float64(*m.TomatometerScore)),
		})
	}

	asc := q.Order == "asc"
	sort.SliceStable(ranked, func(i, j int) bool {
		if asc {
			return ranked[i].Discrepancy < ranked[j].Discrepancy
		}
		return ranked[i].Discrepancy > ranked[j].Discrepancy
	})
	return ranked, nil
}

// All returns the full corpus in storage order, for export.
func (r *Repo) All(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("all query: %w", err)
	}
	return collectMovies(rows)
}

func buildWhere(q FilterQuery) (string, []any) {
	var where []string
	var args []any

	if strings.TrimSpace(q.Genre) != "" {
		where = append(where, "LOWER(genres) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(q.Genre))+"%")
	}
	if q.MinRating != nil {
		where = append(where, "imdb_rating >= ?")
		args = append(args, *q.MinRating)
	}
	if q.MinYear != nil {
		where = append(where, "year >= ?")
		args = append(args, *q.MinYear)
	}

	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func collectMovies(rows *sql.Rows) ([]models.Movie, error) {
	defer rows.Close()

	out := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func scanMovie(rows *sql.Rows) (models.Movie, error) {
	var (
		m          models.Movie
		year       sql.NullInt64
		rating     sql.NullFloat64
		tomato     sql.NullInt64
		audience   sql.NullInt64
		director   sql.NullString
		posterURL  sql.NullString
		plot       sql.NullString
		genresJSON string
		runtime    sql.NullInt64
		castJSON   string
		rtURL      sql.NullString
	)

	if err := rows.Scan(
		&m.SourceImdbURL, &m.Title, &year, &rating, &tomato,
		&audience, &director, &posterURL, &plot, &genresJSON,
		&runtime, &castJSON, &rtURL,
	); err != nil {
		return models.Movie{}, fmt.Errorf("scan movie: %w", err)
	}

	m.Year = nullIntPtr(year)
	m.ImdbRating = nullFloatPtr(rating)
	m.TomatometerScore = nullIntPtr(tomato)
	m.AudienceScore = nullIntPtr(audience)
	m.Director = nullStringPtr(director)
	m.PosterURL = nullStringPtr(posterURL)
	m.PlotSummary = nullStringPtr(plot)
	m.RuntimeMinutes = nullIntPtr(runtime)
	m.RottenTomatoesURL = nullStringPtr(rtURL)

	_ = json.Unmarshal([]byte(genresJSON), &m.Genres)
	_ = json.Unmarshal([]byte(castJSON), &m.Cast)
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if m.Cast == nil {
		m.Cast = []models.CastMember{}
	}
	return m, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
