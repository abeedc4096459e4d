package extract

import (
	"strings"
	"unicode"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// resolveCity takes the first comma-delimited segment of full_location,
// falling back to the direct city field, and normalizes the result.
func resolveCity(payload jobs.Document) *string {
	location, _ := payload.String("full_location")
	if strings.TrimSpace(location) != "" {
		location = strings.Split(location, ",")[0]
	} else {
		location, _ = payload.String("city")
	}
	return normalizeCity(location)
}

// normalizeCity title-cases a free-text city name token by token,
// preserving locale connectives, directional prefixes, the St.
// abbreviation, Mc surnames, and the CDG airport code.
func normalizeCity(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	words := strings.Fields(strings.ToLower(raw))
	normalized := make([]string, 0, len(words))
	for i, word := range words {
		switch {
		case (word == "en" || word == "la") && i != 0:
			// French connectives stay lower-case past the first token.
			normalized = append(normalized, word)
		case (word == "north" || word == "south" || word == "east" || word == "west") && i == 0:
			// Directional prefix of a multi-word city.
			normalized = append(normalized, titleToken(word))
		case word == "saint" || word == "st" || word == "st.":
			normalized = append(normalized, "St.")
		case strings.HasPrefix(word, "mc"):
			normalized = append(normalized, "Mc"+titleToken(word[2:]))
		case word == "cdg":
			normalized = append(normalized, "CDG")
		default:
			normalized = append(normalized, titleToken(word))
		}
	}

	city := strings.Join(normalized, " ")
	return &city
}

// titleToken upper-cases the first letter of every alphabetic run, so
// hyphenated tokens like "winston-salem" become "Winston-Salem".
func titleToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}
