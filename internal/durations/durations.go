// Package durations parses spoken-language duration phrases into seconds.
//
// Input comes from a speech-to-text system, so numbers arrive in word form
// ("five minutes"), phrasing is loose ("2 and a half minutes", "half an
// hour"), and filler words may surround the duration.
package durations

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"murmur/internal/domain"
)

// wordToNum maps spoken number words to values. Whisper emits these in
// common spoken increments rather than full composition.
var wordToNum = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
	"forty": 40, "fifty": 50, "sixty": 60, "ninety": 90,
	"a": 1, "an": 1,
}

var unitAliases = map[string]string{
	"second": "s", "seconds": "s", "sec": "s", "secs": "s", "s": "s",
	"minute": "m", "minutes": "m", "min": "m", "mins": "m", "m": "m",
	"hour": "h", "hours": "h", "hr": "h", "hrs": "h", "h": "h",
}

var (
	halfHourPattern = regexp.MustCompile(`^(?i)half\s+(?:an?\s+)?hour`)
	chunkAtStart    *regexp.Regexp
	chunkAnywhere   *regexp.Regexp
)

func init() {
	// Alternatives sorted longest-first so "minutes" is not shadowed by a
	// prefix match against "minute".
	expr := `(\d+|` + alternation(wordToNum) + `)` +
		`((?:\s+and\s+a\s+half)?)` +
		`\s+` +
		`(` + alternation(unitAliases) + `)` +
		`(\s|$)` // unit must end at a word boundary
	chunkAtStart = regexp.MustCompile(`^(?i)` + expr)
	chunkAnywhere = regexp.MustCompile(`(?i)` + expr)
}

func alternation[V any](words map[string]V) string {
	alts := make([]string, 0, len(words))
	for w := range words {
		alts = append(alts, w)
	}
	sort.Slice(alts, func(i, j int) bool {
		if len(alts[i]) != len(alts[j]) {
			return len(alts[i]) > len(alts[j])
		}
		return alts[i] < alts[j]
	})
	for i, w := range alts {
		alts[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(alts, "|")
}

// Parse extracts a duration from free-form text. On success the label is
// whatever text remains after the consumed duration phrase; when no
// duration is found the label is the original text unchanged.
func Parse(text string) domain.ParsedDuration {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ParsedDuration{Label: text}
	}

	original := text
	total := 0
	found := false

	// "half hour" / "half an hour" is special-cased at the front.
	if loc := halfHourPattern.FindStringIndex(text); loc != nil {
		total += 1800
		text = strings.TrimSpace(text[loc[1]:])
		found = true
	}

	// Greedily consume <number> [and a half] <unit> chunks from the start,
	// summing compound durations like "1 hour 30 minutes".
	for {
		seconds, end, ok := matchChunk(chunkAtStart, text)
		if !ok {
			break
		}
		total += seconds
		text = strings.TrimSpace(text[end:])
		found = true
	}

	// Fallback: tolerate leading filler words by searching for exactly one
	// chunk anywhere in the original text.
	if !found {
		if seconds, end, ok := matchChunk(chunkAnywhere, original); ok {
			total += seconds
			text = strings.TrimSpace(original[end:])
			found = true
		}
	}

	if !found {
		return domain.ParsedDuration{Label: original}
	}

	return domain.ParsedDuration{Seconds: total, Found: true, Label: trimLabel(text)}
}

// matchChunk evaluates one duration chunk match, returning its second count
// and the end offset of the consumed span.
func matchChunk(pattern *regexp.Regexp, text string) (int, int, bool) {
	idx := pattern.FindStringSubmatchIndex(text)
	if idx == nil {
		return 0, 0, false
	}

	num, ok := parseNumberWord(text[idx[2]:idx[3]])
	if !ok {
		return 0, 0, false
	}
	unit, ok := unitAliases[strings.ToLower(text[idx[6]:idx[7]])]
	if !ok {
		return 0, 0, false
	}
	half := idx[4] != idx[5]

	seconds := 0
	switch unit {
	case "s":
		seconds = num
		if half {
			seconds += 30
		}
	case "m":
		seconds = num * 60
		if half {
			seconds += 30
		}
	case "h":
		seconds = num * 3600
		if half {
			seconds += 1800
		}
	}

	return seconds, idx[1], true
}

func parseNumberWord(word string) (int, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if n, err := strconv.Atoi(word); err == nil {
		return n, true
	}
	n, ok := wordToNum[word]
	return n, ok
}

// leading connectors left behind by phrases like "five minutes to check
// the oven" are not part of the timer label.
var labelConnectors = map[string]struct{}{
	"to": {}, "for": {}, "and": {},
}

func trimLabel(text string) string {
	text = strings.Trim(text, " .,!?")
	first, rest := splitFirst(text)
	if _, ok := labelConnectors[strings.ToLower(first)]; ok {
		return strings.Trim(rest, " .,!?")
	}
	return text
}

func splitFirst(text string) (string, string) {
	idx := strings.IndexAny(text, " \t\n")
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimLeft(text[idx:], " \t\n")
}
