package services

import (
	"regexp"
	"strings"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

var sentenceEnd = regexp.MustCompile(`([.!?]+)\s+`)

// splitSentences keeps terminal punctuation attached to each sentence so that
// re-joining the pieces reproduces the source text modulo whitespace.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

func splitParagraphs(text string) []string {
	parts := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
