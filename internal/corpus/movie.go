// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package corpus

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// Field names produced for every item.
const (
	FieldGenres      = "genres"
	FieldKeywords    = "keywords"
	FieldReleaseYear = "release_year"
	FieldVoteAverage = "vote_average"
	FieldRuntime     = "runtime"
)

// Named is a TMDB {id, name} pair.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NamedList decodes either a plain array of Named or an object wrapping one
// under "keywords", "genres" or "results".
type NamedList []Named

// UnmarshalJSON implements json.Unmarshaler.
func (l *NamedList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var items []Named
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var wrapped struct {
		Keywords []Named `json:"keywords"`
		Genres   []Named `json:"genres"`
		Results  []Named `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	switch {
	case wrapped.Keywords != nil:
		*l = wrapped.Keywords
	case wrapped.Genres != nil:
		*l = wrapped.Genres
	default:
		*l = wrapped.Results
	}
	return nil
}

// Names returns the non-empty names in order.
func (l NamedList) Names() []string {
	out := make([]string, 0, len(l))
	for _, n := range l {
		if name := strings.TrimSpace(n.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Movie is one catalog record.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview"`
	Genres      NamedList `json:"genres"`
	Keywords    NamedList `json:"keywords"`
	ReleaseDate string    `json:"release_date"`
	VoteAverage *float64  `json:"vote_average"`
	Runtime     *float64  `json:"runtime"`
}

// ToItem converts m into a feature item.
//
//nolint:gocritic // Movie is read-only here
func ToItem(m Movie) features.Item {
	genres := m.Genres.Names()
	keywords := m.Keywords.Names()

	item := features.Item{
		ID:      m.ID,
		Title:   strings.TrimSpace(m.Title),
		Tags:    map[string][]string{FieldGenres: genres, FieldKeywords: keywords},
		Numeric: make(map[string]float64, 3),
	}

	if year, ok := ReleaseYear(m.ReleaseDate); ok {
		item.Numeric[FieldReleaseYear] = float64(year)
	}
	if m.VoteAverage != nil {
		item.Numeric[FieldVoteAverage] = *m.VoteAverage
	}
	// TMDB reports unknown runtimes as 0.
	if m.Runtime != nil && *m.Runtime > 0 {
		item.Numeric[FieldRuntime] = *m.Runtime
	}

	parts := make([]string, 0, 3)
	if overview := strings.TrimSpace(m.Overview); overview != "" {
		parts = append(parts, overview)
	}
	if len(genres) > 0 {
		parts = append(parts, strings.Join(genres, " "))
	}
	if len(keywords) > 0 {
		parts = append(parts, strings.Join(keywords, " "))
	}
	item.Text = strings.Join(parts, " ")

	return item
}

// ReleaseYear parses "2006-01-02" or a bare "2006".
func ReleaseYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	if t, err := time.Parse(time.DateOnly, date); err == nil {
		return t.Year(), true
	}
	if len(date) == 4 {
		if y, err := strconv.Atoi(date); err == nil {
			return y, true
		}
	}
	return 0, false
}

var titleYearRe = regexp.MustCompile(`\((\d{4})\)\s*$`)

// SplitTitleYear splits "Toy Story (1995)" into ("Toy Story", 1995, true).
func SplitTitleYear(raw string) (string, int, bool) {
	raw = strings.TrimSpace(raw)
	m := titleYearRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return raw, 0, false
	}
	year, err := strconv.Atoi(raw[m[2]:m[3]])
	if err != nil {
		return raw, 0, false
	}
	title := strings.TrimSpace(raw[:m[0]])
	if title == "" {
		return raw, year, true
	}
	return title, year, true
}
