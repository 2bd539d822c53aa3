package stations

import (
	"fmt"
	"log"
	"regexp"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// trim shortens s to max runes for log lines.
func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// S1ExtractURL pulls the first http(s) link out of pasted share text.
type S1ExtractURL struct{}

func NewS1ExtractURL() *S1ExtractURL { return &S1ExtractURL{} }

func (s *S1ExtractURL) Run(input string) (string, error) {
	u := urlPattern.FindString(input)
	if u == "" {
		log.Printf("[S1][ERR] no link in %q", trim(input, 120))
		return "", fmt.Errorf("no http link found in input")
	}
	log.Printf("[S1][OK] url=%s", u)
	return u, nil
}
