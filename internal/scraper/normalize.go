package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"moviehub/pkg/models"
)

// UnknownCredit stands in for a missing actor or character name so the cast
// list keeps its billed length instead of silently dropping entries.
const UnknownCredit = "Unknown"

// Every function in this file is total: any raw input, including the empty
// string, maps to a typed value or nil (absent). The extractors hand over
// whatever text the page had; deciding whether it means anything happens
// here, and a bad value never fails the pipeline.

func parseYear(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func parseRating(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f > 10 {
		return nil
	}
	return &f
}

// parseScore reads a 0-100 percentage, with or without the trailing "%".
func parseScore(s string) *int {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return nil
	}
	return &n
}

var (
	hoursRe   = regexp.MustCompile(`(\d+)\s*h`)
	minutesRe = regexp.MustCompile(`(\d+)\s*m`)
)

// parseRuntimeMinutes converts "<H>h <M>m" notation (either part optional)
// into total minutes. A zero total means the page had no real runtime, so
// it comes back absent rather than as 0.
func parseRuntimeMinutes(s string) *int {
	total := 0
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		total += h * 60
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.Atoi(m[1])
		total += mins
	}
	if total <= 0 {
		return nil
	}
	return &total
}

// normalizeCast caps the billed cast at limit entries and fills missing
// names with the UnknownCredit marker.
func normalizeCast(raw []rawCastEntry, limit int) []models.CastMember {
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	out := make([]models.CastMember, 0, len(raw))
	for _, e := range raw {
		actor := strings.TrimSpace(e.Actor)
		if actor == "" {
			actor = UnknownCredit
		}
		character := strings.TrimSpace(e.Character)
		if character == "" {
			character = UnknownCredit
		}
		out = append(out, models.CastMember{Actor: actor, Character: character})
	}
	return out
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
