// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package corpus

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// Stats counts the records seen while reading a corpus.
type Stats struct {
	Records int `json:"records"`
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Format selects the input parser.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("cannot infer corpus format from %q; set the format explicitly", path)
	}
}

// LoadFile reads the corpus at path.
func LoadFile(ctx context.Context, path string, format Format) ([]features.Item, Stats, error) {
	if format == FormatAuto {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, Stats{}, err
		}
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	r := bufio.NewReader(f)
	switch format {
	case FormatJSON:
		return ReadJSON(ctx, r)
	case FormatCSV:
		return ReadCSV(ctx, r)
	default:
		return nil, Stats{}, fmt.Errorf("unknown corpus format %q", format)
	}
}

// ReadJSON decodes a JSON array of movies.
func ReadJSON(ctx context.Context, r io.Reader) ([]features.Item, Stats, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read corpus: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, Stats{}, errors.New("read corpus: expected a JSON array of movies")
	}

	var (
		items []features.Item
		stats Stats
	)
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		var m Movie
		if err := dec.Decode(&m); err != nil {
			return nil, stats, fmt.Errorf("decode movie %d: %w", stats.Records+1, err)
		}
		stats.Records++
		items = appendMovie(items, &stats, m)
	}

	if _, err := dec.Token(); err != nil {
		return nil, stats, fmt.Errorf("read corpus: %w", err)
	}
	return items, stats, nil
}

//nolint:gocritic // m is consumed here
func appendMovie(items []features.Item, stats *Stats, m Movie) []features.Item {
	item := ToItem(m)
	if item.Title == "" {
		stats.Skipped++
		return items
	}
	stats.Loaded++
	return append(items, item)
}

// ReadCSV reads movies from a CSV file with a header row.
func ReadCSV(ctx context.Context, r io.Reader) ([]features.Item, Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read corpus header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := idx["title"]; !ok {
		return nil, Stats{}, errors.New("read corpus: CSV header has no title column")
	}
	_, hasDate := idx["release_date"]

	col := func(rec []string, names ...string) string {
		for _, name := range names {
			if i, ok := idx[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
		}
		return ""
	}

	var (
		items []features.Item
		stats Stats
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read corpus line %d: %w", stats.Records+2, err)
		}
		stats.Records++

		m := Movie{
			Title:       col(rec, "title"),
			Overview:    col(rec, "overview"),
			Genres:      parseNamedList(col(rec, "genres")),
			Keywords:    parseNamedList(col(rec, "keywords")),
			ReleaseDate: col(rec, "release_date"),
			VoteAverage: parseFloat(col(rec, "vote_average")),
			Runtime:     parseFloat(col(rec, "runtime")),
		}
		if id, err := strconv.ParseInt(col(rec, "id", "movieid"), 10, 64); err == nil {
			m.ID = id
		}
		if !hasDate {
			if title, year, ok := SplitTitleYear(m.Title); ok {
				m.Title = title
				m.ReleaseDate = strconv.Itoa(year)
			}
		}

		items = appendMovie(items, &stats, m)
	}

	return items, stats, nil
}

// parseFloat returns nil for empty, malformed, or non-finite cells.
func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// nameRe matches name values in JSON ("name": "x") and Python ('name': 'x') literals.
var nameRe = regexp.MustCompile(`["']name["']\s*:\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')`)

// parseNamedList reads a list cell: a list of {name} objects, a JSON array of
// strings, or "|"-separated values.
func parseNamedList(raw string) NamedList {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" || raw == "(no genres listed)" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var out NamedList
		for _, m := range nameRe.FindAllStringSubmatch(raw, -1) {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			out = append(out, Named{Name: unescape(name)})
		}
		if len(out) > 0 {
			return out
		}

		var plain []string
		if err := json.Unmarshal([]byte(raw), &plain); err == nil {
			for _, s := range plain {
				out = append(out, Named{Name: s})
			}
		}
		return out
	}

	var out NamedList
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, Named{Name: part})
		}
	}
	return out
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}
