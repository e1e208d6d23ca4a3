package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeAnswer canonicalizes a free-text answer: runs of whitespace
// collapse to one space, ends trimmed, lowercased, diacritical marks
// stripped. "Verdadero ", "verdaderó" and "  VERDADERO" all normalize to
// "verdadero".
func NormalizeAnswer(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	return s
}

// ValidateAnswer reports whether the submitted answer is correct.
// MULTIPLE compares the trimmed, uppercased option letter; diacritics are
// significant. ABIERTO compares both sides after NormalizeAnswer.
func (e *Exercise) ValidateAnswer(userAnswer string) bool {
	if e.Kind == ExerciseMultipleChoice {
		return strings.ToUpper(strings.TrimSpace(userAnswer)) == strings.ToUpper(e.CorrectAnswer)
	}
	return NormalizeAnswer(userAnswer) == NormalizeAnswer(e.CorrectAnswer)
}
