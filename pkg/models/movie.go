package models

// CastMember is one billed cast entry. Actor and Character fall back to
// "Unknown" when the source page omits them, so list length stays meaningful.
type CastMember struct {
	Actor     string `json:"actor"`
	Character string `json:"character"`
}

// Movie is the canonical, merged form of one film. IMDb is the primary
// source and owns every field except the three Rotten Tomatoes ones, which
// are only set when identity resolution found a match.
//
// Optional scalars are pointers: nil means the source did not have the
// value, and that absence must survive the database and the JSON/CSV
// layers. Genres and Cast are never nil on a record read back from the
// store, only possibly empty.
type Movie struct {
	Title             string       `json:"title"`
	Year              *int         `json:"year"`
	ImdbRating        *float64     `json:"imdb_rating"`
	TomatometerScore  *int         `json:"tomatometer_score"`
	AudienceScore     *int         `json:"audience_score"`
	Director          *string      `json:"director"`
	PosterURL         *string      `json:"poster_url"`
	PlotSummary       *string      `json:"plot_summary"`
	Genres            []string     `json:"genres"`
	RuntimeMinutes    *int         `json:"runtime_minutes"`
	Cast              []CastMember `json:"cast"`
	SourceImdbURL     string       `json:"source_imdb_url"`
	RottenTomatoesURL *string      `json:"rotten_tomatoes_url"`
}
