package movies

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moviehub/pkg/models"
)

// CSV dialect: semicolon-delimited (Excel-friendly), one row per record,
// absent fields as empty cells, genres joined with ", ", cast flattened to
// actor names joined with " | " (characters are not carried in the export).

var csvHeader = []string{
	"title", "year", "imdb_rating", "tomatometer_score", "audience_score",
	"director", "poster_url", "plot_summary", "genres", "runtime_minutes",
	"cast", "source_imdb_url", "rotten_tomatoes_url",
}

const (
	genreSeparator = ", "
	castSeparator  = " | "
)

func WriteCSV(w io.Writer, movies []models.Movie) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range movies {
		if err := cw.Write(csvRecord(m)); err != nil {
			return fmt.Errorf("write csv row for %s: %w", m.SourceImdbURL, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(m models.Movie) []string {
	actors := make([]string, 0, len(m.Cast))
	for _, c := range m.Cast {
		actors = append(actors, c.Actor)
	}

	return []string{
		m.Title,
		intCell(m.Year),
		floatCell(m.ImdbRating),
		intCell(m.TomatometerScore),
		intCell(m.AudienceScore),
		stringCell(m.Director),
		stringCell(m.PosterURL),
		stringCell(m.PlotSummary),
		strings.Join(m.Genres, genreSeparator),
		intCell(m.RuntimeMinutes),
		strings.Join(actors, castSeparator),
		m.SourceImdbURL,
		stringCell(m.RottenTomatoesURL),
	}
}

// ReadCSV parses a file produced by WriteCSV back into canonical records.
// Empty cells come back as absent values, list cells are re-split on the
// documented separators.
func ReadCSV(r io.Reader) ([]models.Movie, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) != len(csvHeader) || header[0] != csvHeader[0] {
		return nil, fmt.Errorf("unexpected csv header: %v", header)
	}

	var out []models.Movie
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("line %d: expected %d cells, got %d", line, len(csvHeader), len(row))
		}

		m := models.Movie{
			Title:             row[0],
			Year:              intFromCell(row[1]),
			ImdbRating:        floatFromCell(row[2]),
			TomatometerScore:  intFromCell(row[3]),
			AudienceScore:     intFromCell(row[4]),
			Director:          stringFromCell(row[5]),
			PosterURL:         stringFromCell(row[6]),
			PlotSummary:       stringFromCell(row[7]),
			Genres:            splitList(row[8], genreSeparator),
			RuntimeMinutes:    intFromCell(row[9]),
			Cast:              castFromCell(row[10]),
			SourceImdbURL:     row[11],
			RottenTomatoesURL: stringFromCell(row[12]),
		}
		if m.SourceImdbURL == "" {
			return nil, fmt.Errorf("line %d: missing source_imdb_url", line)
		}
		out = append(out, m)
	}
	return out, nil
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func stringCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intFromCell(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func floatFromCell(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func stringFromCell(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func splitList(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}

func castFromCell(s string) []models.CastMember {
	actors := splitList(s, castSeparator)
	out := make([]models.CastMember, 0, len(actors))
	for _, a := range actors {
		out = append(out, models.CastMember{Actor: a})
	}
	return out
}
