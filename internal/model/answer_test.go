package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "verdadero", "verdadero"},
		{"uppercase", "VERDADERO", "verdadero"},
		{"surrounding whitespace", "  verdadero \t", "verdadero"},
		{"inner whitespace collapses", "x  =   2", "x = 2"},
		{"diacritics stripped", "conjunción", "conjuncion"},
		{"mixed", "  Negación   LÓGICA ", "negacion logica"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAnswer(tt.input))
		})
	}
}

func TestNormalizeAnswerIdempotent(t *testing.T) {
	inputs := []string{"  Conjunción  y  Disyunción ", "ÁÉÍÓÚ ü ñ", "x^2 + 1"}
	for _, in := range inputs {
		once := NormalizeAnswer(in)
		assert.Equal(t, once, NormalizeAnswer(once))
	}
}

func TestValidateAnswerOpen(t *testing.T) {
	e := &Exercise{Kind: ExerciseOpen, CorrectAnswer: "Conjunción"}

	assert.True(t, e.ValidateAnswer("conjuncion"))
	assert.True(t, e.ValidateAnswer("  CONJUNCIÓN "))
	assert.True(t, e.ValidateAnswer("conjunción"))
	assert.False(t, e.ValidateAnswer("disyuncion"))
	assert.False(t, e.ValidateAnswer(""))
}

func TestValidateAnswerMultipleChoice(t *testing.T) {
	e := &Exercise{Kind: ExerciseMultipleChoice, CorrectAnswer: "B"}

	assert.True(t, e.ValidateAnswer("B"))
	assert.True(t, e.ValidateAnswer("b"))
	assert.True(t, e.ValidateAnswer(" b "))
	assert.False(t, e.ValidateAnswer("A"))
	assert.False(t, e.ValidateAnswer(""))
}

func TestExerciseFeedback(t *testing.T) {
	e := &Exercise{FeedbackCorrect: "bien", FeedbackIncorrect: "repasa el tema"}
	assert.Equal(t, "bien", e.Feedback(true))
	assert.Equal(t, "repasa el tema", e.Feedback(false))

	empty := &Exercise{}
	assert.Equal(t, "", empty.Feedback(true))
}

func TestExerciseHasHelp(t *testing.T) {
	assert.True(t, (&Exercise{HelpText: "pista"}).HasHelp())
	assert.False(t, (&Exercise{}).HasHelp())
}
