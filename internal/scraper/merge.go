package scraper

import "moviehub/pkg/models"

// Merge combines the normalized primary record with an optional secondary
// match into the canonical record. The two sources own disjoint field sets,
// so there is no conflict resolution: primary fields pass through untouched
// and the three secondary fields are set only when resolution found a
// match, absent otherwise. Pure function: same inputs, same output.
func Merge(primary models.Movie, match *TomatoMatch) models.Movie {
	merged := primary

	if merged.Genres == nil {
		merged.Genres = []string{}
	}
	if merged.Cast == nil {
		merged.Cast = []models.CastMember{}
	}

	if match == nil {
		merged.TomatometerScore = nil
		merged.AudienceScore = nil
		merged.RottenTomatoesURL = nil
		return merged
	}

	merged.TomatometerScore = match.Tomatometer
	merged.AudienceScore = match.AudienceScore
	if match.URL != "" {
		u := match.URL
		merged.RottenTomatoesURL = &u
	}
	return merged
}
