package drift

import (
	"fmt"
	"strings"
)

// Level represents the risk level of a comparison, a pair, or an issue.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Levels lists every known level from most to least severe.
var Levels = []Level{LevelHigh, LevelMedium, LevelLow}

// Normalize maps "high", "medium" and "low" (any case) to their Level.
// Anything else, including the empty string, degrades to LevelLow.
func Normalize(s string) Level {
	l, ok := lookup(s)
	if !ok {
		return LevelLow
	}
	return l
}

// ParseStrict is Normalize without the fallback.
func ParseStrict(s string) (Level, error) {
	l, ok := lookup(s)
	if !ok {
		return "", fmt.Errorf("unknown risk level %q (want low, medium or high)", s)
	}
	return l, nil
}

// Valid reports whether s names a known level.
func Valid(s string) bool {
	_, ok := lookup(s)
	return ok
}

func lookup(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelHigh:
		return LevelHigh, true
	case LevelMedium:
		return LevelMedium, true
	case LevelLow:
		return LevelLow, true
	default:
		return "", false
	}
}

// Rank returns a numeric rank for ordering (higher = more severe).
// Unranked values are normalized first so every comparison uses the same order.
func Rank(l Level) int {
	switch Normalize(string(l)) {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	default:
		return 1
	}
}

// MeetsThreshold returns true if l is at or above threshold.
func MeetsThreshold(l, threshold Level) bool {
	return Rank(l) >= Rank(threshold)
}

// Upper returns the upper-case label used in reports, e.g. "HIGH".
func (l Level) Upper() string {
	return strings.ToUpper(string(Normalize(string(l))))
}

// Keyword rules, checked in order. The first rule with a matching keyword wins.
var inferenceRules = []struct {
	keywords []string
	level    Level
}{
	{[]string{"missing snapshot for production", "app_debug"}, LevelHigh},
	{[]string{"missing env key", "mismatch"}, LevelMedium},
}

// Infer classifies an issue message by keyword. When no keyword matches it
// returns the normalized fallback.
func Infer(text string, fallback Level) Level {
	lower := strings.ToLower(text)
	for _, rule := range inferenceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.level
			}
		}
	}
	return Normalize(string(fallback))
}
