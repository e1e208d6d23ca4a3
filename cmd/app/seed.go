package main

import (
	"matelog-backend/internal/db"
	"matelog-backend/internal/model"
	"matelog-backend/utilities"
)

// seedDatabase inserts a starter lesson with two topics so a fresh install
// has something to show. It is a no-op when lessons already exist.
func seedDatabase() error {
	conn := db.GetDB()

	var count int64
	if err := conn.Model(&model.Lesson{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utilities.Info("seed skipped, lessons already present")
		return nil
	}

	lesson := model.Lesson{
		Title:       "Lógica proposicional",
		Description: "<p>Introducción a las proposiciones y sus conectivos.</p>",
		Order:       1,
		IsActive:    true,
		Topics: []model.Topic{
			{
				Title:       "Proposiciones simples y compuestas",
				Description: "<p>Qué es una proposición y cómo se combinan.</p>",
				Order:       1,
				IsActive:    true,
				Contents: []model.TopicContent{
					{Kind: model.ContentTheory, Order: 1, Body: "<p>Una proposición es un enunciado que puede ser verdadero o falso.</p>"},
					{Kind: model.ContentExample, Order: 2, Body: "<p>\"5 es primo\" es una proposición verdadera.</p>"},
				},
				Exercises: []model.Exercise{
					{
						Order:             1,
						Kind:              model.ExerciseMultipleChoice,
						Difficulty:        model.DifficultyEasy,
						Instruction:       "Selecciona la opción correcta.",
						Statement:         "¿Cuál de los siguientes enunciados es una proposición?",
						CorrectAnswer:     "B",
						FeedbackCorrect:   "Correcto, tiene un valor de verdad definido.",
						FeedbackIncorrect: "Recuerda que una proposición debe poder ser verdadera o falsa.",
						Options: []model.ExerciseOption{
							{Letter: "A", Text: "¡Cierra la puerta!"},
							{Letter: "B", Text: "Madrid es la capital de España."},
							{Letter: "C", Text: "¿Qué hora es?"},
							{Letter: "D", Text: "Ojalá llueva mañana."},
						},
					},
					{
						Order:         2,
						Kind:          model.ExerciseOpen,
						Difficulty:    model.DifficultyMedium,
						Instruction:   "Escribe tu respuesta.",
						Statement:     "¿Cómo se llama el conectivo lógico representado por el símbolo ∧?",
						CorrectAnswer: "conjuncion",
						HelpText:      "Es el conectivo que corresponde a la palabra \"y\".",
					},
				},
			},
			{
				Title:       "Tablas de verdad",
				Description: "<p>Construcción de tablas de verdad para fórmulas compuestas.</p>",
				Order:       2,
				IsActive:    true,
				Contents: []model.TopicContent{
					{Kind: model.ContentTheory, Order: 1, Body: "<p>Una tabla de verdad enumera todas las combinaciones de valores.</p>"},
				},
				Exercises: []model.Exercise{
					{
						Order:          1,
						Kind:           model.ExerciseOpen,
						Difficulty:     model.DifficultyHard,
						ShowDifficulty: true,
						Instruction:    "Escribe tu respuesta.",
						Statement:      "¿Cuántas filas tiene la tabla de verdad de una fórmula con 3 variables?",
						CorrectAnswer:  "8",
					},
				},
			},
		},
	}

	if err := conn.Create(&lesson).Error; err != nil {
		return err
	}
	utilities.Info("seeded lesson %q with %d topics", lesson.Title, len(lesson.Topics))
	return nil
}
