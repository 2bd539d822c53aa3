package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/Vovarama1992/deepflow/internal/models"
)

// Split packs the lines of text greedily into segments shorter than maxChars.
// A line that alone reaches maxChars is cut into maxChars-sized slices. Lengths
// are counted in runes.
func Split(text string, maxChars int) ([]models.Segment, error) {
	if maxChars <= 0 {
		return nil, invalidArg("maxChars must be > 0, got %d", maxChars)
	}
	if text == "" {
		return nil, nil
	}

	var (
		segments []models.Segment
		acc      strings.Builder
		accLen   int
		accStart int
		offset   int
	)

	emit := func(content string, at int) {
		segments = append(segments, models.Segment{
			Index:   len(segments),
			Content: content,
			Offset:  at,
		})
	}

	for _, p := range strings.Split(text, "\n") {
		pLen := utf8.RuneCountInString(p)

		if accLen+pLen < maxChars {
			if accLen == 0 {
				accStart = offset
			}
			acc.WriteString(p)
			acc.WriteByte('\n')
			accLen += pLen + 1
			offset += pLen + 1
			continue
		}

		if accLen > 0 {
			emit(acc.String(), accStart)
			acc.Reset()
			accLen = 0
		}

		if pLen >= maxChars {
			runes := []rune(p)
			for i := 0; i < len(runes); i += maxChars {
				end := min(i+maxChars, len(runes))
				emit(string(runes[i:end]), offset+i)
			}
		} else {
			accStart = offset
			acc.WriteString(p)
			acc.WriteByte('\n')
			accLen = pLen + 1
		}
		offset += pLen + 1
	}

	if accLen > 0 {
		emit(acc.String(), accStart)
	}
	return segments, nil
}
