package model

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Grupo        Group     `json:"grupo" gorm:"size:1"`
	Especialidad Specialty `json:"especialidad" gorm:"size:20"`
	Genero       Gender    `json:"genero" gorm:"size:1"`
	Edad         AgeChoice `json:"edad" gorm:"size:2"`
	CreatedAt    time.Time `json:"date_joined"`
	UpdatedAt    time.Time `json:"-"`
}

// Lesson is the top content level. Soft-deleted through IsActive so IDs stay
// stable for the frontend.
type Lesson struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"titulo" gorm:"size:200;not null"`
	Description string    `json:"descripcion"` // HTML from the authoring tool
	Order       uint      `json:"orden" gorm:"uniqueIndex;not null"`
	IsActive    bool      `json:"-" gorm:"default:true"`
	Topics      []Topic   `json:"-" gorm:"foreignKey:LessonID"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type Topic struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LessonID    uint           `json:"leccion_id" gorm:"not null;uniqueIndex:idx_topic_lesson_order"`
	Title       string         `json:"titulo" gorm:"size:200;not null"`
	Description string         `json:"descripcion"`
	Order       uint           `json:"orden" gorm:"not null;uniqueIndex:idx_topic_lesson_order"`
	IsActive    bool           `json:"-" gorm:"default:true"`
	Contents    []TopicContent `json:"-" gorm:"foreignKey:TopicID"`
	Exercises   []Exercise     `json:"-" gorm:"foreignKey:TopicID"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// TopicContent is one theory/example block, shown sequentially before the
// exercises.
type TopicContent struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	TopicID   uint        `json:"-" gorm:"not null;uniqueIndex:idx_content_topic_order"`
	Kind      ContentKind `json:"tipo" gorm:"size:20;not null"`
	Order     uint        `json:"orden" gorm:"not null;uniqueIndex:idx_content_topic_order"`
	Body      string      `json:"contenido_texto"` // HTML, images embedded
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

// Exercise belongs to a topic. For MULTIPLE exercises CorrectAnswer holds the
// option letter (A-D); for ABIERTO it holds the exact expected answer.
// CorrectAnswer and the feedback texts never reach the client directly.
type Exercise struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	TopicID           uint             `json:"-" gorm:"not null;uniqueIndex:idx_exercise_topic_order"`
	Order             uint             `json:"orden" gorm:"not null;uniqueIndex:idx_exercise_topic_order"`
	Kind              ExerciseKind     `json:"tipo" gorm:"size:10;not null"`
	Difficulty        Difficulty       `json:"dificultad" gorm:"size:15;not null"`
	ShowDifficulty    bool             `json:"mostrar_dificultad" gorm:"default:false"`
	Instruction       string           `json:"instruccion"`
	Statement         string           `json:"enunciado"`
	CorrectAnswer     string           `json:"-" gorm:"size:500;not null"`
	HelpText          string           `json:"texto_ayuda"`
	FeedbackCorrect   string           `json:"-"`
	FeedbackIncorrect string           `json:"-"`
	Options           []ExerciseOption `json:"opciones" gorm:"foreignKey:ExerciseID"`
	CreatedAt         time.Time        `json:"-"`
	UpdatedAt         time.Time        `json:"-"`
}

// HasHelp reports whether the exercise carries help text.
func (e *Exercise) HasHelp() bool { return e.HelpText != "" }

// Feedback returns the feedback text for the given outcome, empty when none
// was authored.
func (e *Exercise) Feedback(correct bool) string {
	if correct {
		return e.FeedbackCorrect
	}
	return e.FeedbackIncorrect
}

// ExerciseOption is one choice of a MULTIPLE exercise, at most one per letter.
type ExerciseOption struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	ExerciseID uint   `json:"-" gorm:"not null;uniqueIndex:idx_option_exercise_letter"`
	Letter     string `json:"letra" gorm:"size:1;not null;uniqueIndex:idx_option_exercise_letter"`
	Text       string `json:"texto" gorm:"size:500;not null"`
}
