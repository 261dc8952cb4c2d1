package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Field names accepted by the two write payloads. Anything else is rejected.
var matchFields = map[string]bool{
	"winning_song":        true,
	"losing_song":         true,
	"winning_song_rating": true,
	"losing_song_rating":  true,
}

var seedFields = map[string]bool{
	"id":              true,
	"path":            true,
	"title":           true,
	"extension":       true,
	"starting_rating": true,
}

// ParseMatchCommand validates a recordMatch payload. It fails closed:
// unknown fields, missing fields, and out-of-range values are all collected
// into a ValidationError rather than reported one at a time.
func ParseMatchCommand(data []byte) (MatchCommand, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		verr := &ValidationError{}
		return MatchCommand{}, verr.add("body", "must be a JSON object")
	}

	verr := &ValidationError{}
	for field := range raw {
		if !matchFields[field] {
			verr.add(field, "unknown field")
		}
	}

	winner := intField(raw, "winning_song", verr)
	loser := intField(raw, "losing_song", verr)
	winnerRating := ratingField(raw, "winning_song_rating", verr)
	loserRating := ratingField(raw, "losing_song_rating", verr)

	if err := verr.orNil(); err != nil {
		return MatchCommand{}, err
	}
	return MatchCommand{
		WinnerID:     winner,
		LoserID:      loser,
		WinnerRating: winnerRating,
		LoserRating:  loserRating,
	}, nil
}

// ParseSeedSongs validates a seedRoster payload: an array of seed entries
// with unique non-negative ids, non-empty descriptive fields, and finite
// starting ratings. Issues carry zod-style element paths, e.g. "[2].title".
func ParseSeedSongs(data []byte) ([]SeedSong, error) {
	var rawSongs []map[string]json.RawMessage
	// A literal null unmarshals into a nil slice without error.
	if err := json.Unmarshal(data, &rawSongs); err != nil || rawSongs == nil {
		verr := &ValidationError{}
		return nil, verr.add("body", "must be a JSON array of songs")
	}

	verr := &ValidationError{}
	songs := make([]SeedSong, 0, len(rawSongs))
	seen := make(map[int64]bool, len(rawSongs))

	for i, raw := range rawSongs {
		prefix := fmt.Sprintf("[%d].", i)
		for field := range raw {
			if !seedFields[field] {
				verr.add(prefix+field, "unknown field")
			}
		}

		id := intField(raw, "id", verr, prefix)
		path := stringField(raw, "path", verr, prefix)
		title := stringField(raw, "title", verr, prefix)
		extension := stringField(raw, "extension", verr, prefix)
		rating := ratingField(raw, "starting_rating", verr, prefix)

		if _, ok := raw["id"]; ok && id >= 0 {
			if seen[id] {
				verr.add(prefix+"id", "duplicate id")
			}
			seen[id] = true
		}

		songs = append(songs, SeedSong{
			ID:             id,
			Path:           path,
			Title:          title,
			Extension:      extension,
			StartingRating: rating,
		})
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return songs, nil
}

func intField(raw map[string]json.RawMessage, field string, verr *ValidationError, prefix ...string) int64 {
	name := field
	if len(prefix) > 0 {
		name = prefix[0] + field
	}
	data, ok := raw[field]
	if !ok {
		verr.add(name, "missing required field")
		return -1
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		verr.add(name, "must be a number")
		return -1
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		verr.add(name, "must be an integer")
		return -1
	}
	if f < 0 {
		verr.add(name, "must be non-negative")
		return -1
	}
	// float64 values at or above 2^63 overflow the int64 conversion.
	if f >= math.MaxInt64 {
		verr.add(name, "out of range")
		return -1
	}
	return int64(f)
}

func ratingField(raw map[string]json.RawMessage, field string, verr *ValidationError, prefix ...string) float64 {
	name := field
	if len(prefix) > 0 {
		name = prefix[0] + field
	}
	data, ok := raw[field]
	if !ok {
		verr.add(name, "missing required field")
		return 0
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		verr.add(name, "must be a number")
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		verr.add(name, "must be finite")
		return 0
	}
	return f
}

func stringField(raw map[string]json.RawMessage, field string, verr *ValidationError, prefix ...string) string {
	name := field
	if len(prefix) > 0 {
		name = prefix[0] + field
	}
	data, ok := raw[field]
	if !ok {
		verr.add(name, "missing required field")
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		verr.add(name, "must be a string")
		return ""
	}
	if s == "" {
		verr.add(name, "must not be empty")
		return ""
	}
	return s
}
