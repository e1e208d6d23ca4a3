package service

import "matelog-backend/internal/model"

// View types mirror the wire format the frontend consumes. Correct answers
// and feedback texts are deliberately absent from exercise views.

type ProgressSnapshot struct {
	State             model.LessonState `json:"estado"`
	CompletionPercent float64           `json:"porcentaje_completado"`
}

type TopicProgressSnapshot struct {
	State           model.TopicState `json:"estado"`
	Unlocked        bool             `json:"desbloqueado"`
	AccuracyPercent float64          `json:"porcentaje_acierto"`
	AttemptsMade    uint             `json:"intentos_realizados"`
}

type LessonSummary struct {
	ID          uint             `json:"id"`
	Title       string           `json:"titulo"`
	Description string           `json:"descripcion"`
	Order       uint             `json:"orden"`
	TopicCount  int64            `json:"cantidad_temas"`
	Progress    ProgressSnapshot `json:"progreso"`
}

type TopicSummary struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"titulo"`
	Description   string                `json:"descripcion"`
	Order         uint                  `json:"orden"`
	ContentCount  int64                 `json:"cantidad_contenidos"`
	ExerciseCount int64                 `json:"cantidad_ejercicios"`
	Progress      TopicProgressSnapshot `json:"progreso"`
}

type LessonDetail struct {
	ID          uint             `json:"id"`
	Title       string           `json:"titulo"`
	Description string           `json:"descripcion"`
	Order       uint             `json:"orden"`
	Topics      []TopicSummary   `json:"temas"`
	Progress    ProgressSnapshot `json:"progreso"`
}

type ContentView struct {
	ID        uint              `json:"id"`
	Kind      model.ContentKind `json:"tipo"`
	KindLabel string            `json:"tipo_display"`
	Order     uint              `json:"orden"`
	Body      string            `json:"contenido_texto"`
}

type OptionView struct {
	Letter string `json:"letra"`
	Text   string `json:"texto"`
}

type ExerciseView struct {
	ID              uint               `json:"id"`
	Order           uint               `json:"orden"`
	Kind            model.ExerciseKind `json:"tipo"`
	KindLabel       string             `json:"tipo_display"`
	Difficulty      model.Difficulty   `json:"dificultad"`
	DifficultyLabel string             `json:"dificultad_display"`
	ShowDifficulty  bool               `json:"mostrar_dificultad"`
	Instruction     string             `json:"instruccion"`
	Statement       string             `json:"enunciado"`
	Options         []OptionView       `json:"opciones"`
	HelpText        string             `json:"texto_ayuda"`
	HasHelp         bool               `json:"tiene_ayuda"`
}

// AnsweredExercise is the recorded outcome surfaced when a topic is reopened
// mid-attempt.
type AnsweredExercise struct {
	UserAnswer string `json:"respuesta_usuario"`
	IsCorrect  bool   `json:"es_correcta"`
	UsedHint   bool   `json:"uso_ayuda"`
}

type TopicDetail struct {
	ID                uint                      `json:"id"`
	Title             string                    `json:"titulo"`
	Description       string                    `json:"descripcion"`
	Order             uint                      `json:"orden"`
	Contents          []ContentView             `json:"contenidos"`
	Exercises         []ExerciseView            `json:"ejercicios"`
	Answered          map[uint]AnsweredExercise `json:"ejercicios_respondidos"`
	NextExerciseIndex int                       `json:"siguiente_ejercicio_index"`
	AnsweredCount     int                       `json:"total_ejercicios_respondidos"`
}

func newContentView(c model.TopicContent) ContentView {
	return ContentView{
		ID:        c.ID,
		Kind:      c.Kind,
		KindLabel: c.Kind.Label(),
		Order:     c.Order,
		Body:      c.Body,
	}
}

func newExerciseView(e model.Exercise) ExerciseView {
	options := make([]OptionView, 0, len(e.Options))
	for _, o := range e.Options {
		options = append(options, OptionView{Letter: o.Letter, Text: o.Text})
	}
	return ExerciseView{
		ID:              e.ID,
		Order:           e.Order,
		Kind:            e.Kind,
		KindLabel:       e.Kind.Label(),
		Difficulty:      e.Difficulty,
		DifficultyLabel: e.Difficulty.Label(),
		ShowDifficulty:  e.ShowDifficulty,
		Instruction:     e.Instruction,
		Statement:       e.Statement,
		Options:         options,
		HelpText:        e.HelpText,
		HasHelp:         e.HasHelp(),
	}
}

// ValidationResult is the outcome of one answer submission. Feedback is only
// present when the exercise has text authored for the outcome.
type ValidationResult struct {
	IsCorrect bool   `json:"es_correcta"`
	Feedback  string `json:"retroalimentacion,omitempty"`
}

// FinalizeResult summarizes one finalize cycle. ImprovementPercent is null
// on a first attempt or when the delta is zero.
type FinalizeResult struct {
	Passed             bool     `json:"aprobado"`
	AccuracyPercent    float64  `json:"porcentaje_acierto"`
	CorrectCount       uint     `json:"ejercicios_correctos"`
	TotalCount         uint     `json:"ejercicios_totales"`
	LessonID           uint     `json:"leccion_id"`
	TopicID            uint     `json:"tema_id"`
	NextTopicID        *uint    `json:"siguiente_tema_id"`
	AttemptNumber      uint     `json:"numero_intento"`
	ImprovementPercent *float64 `json:"mejora_porcentaje"`
}

// AttemptHistory is one page of a topic's attempt records, newest first.
type AttemptHistory struct {
	Attempts []model.TopicAttempt `json:"intentos"`
	Total    int64                `json:"total"`
	Page     int                  `json:"pagina"`
	PageSize int                  `json:"tamano_pagina"`
}
