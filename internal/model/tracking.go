package model

import "time"

// LessonProgress tracks one user's state in one lesson. Created lazily on
// first access, never deleted.
type LessonProgress struct {
	ID                uint        `json:"id" gorm:"primaryKey"`
	UserID            uint        `json:"-" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	LessonID          uint        `json:"leccion_id" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	State             LessonState `json:"estado" gorm:"size:20;default:'SIN_INICIAR'"`
	CompletionPercent float64     `json:"porcentaje_completado" gorm:"default:0"`
	StartedAt         *time.Time  `json:"fecha_inicio"`
	CompletedAt       *time.Time  `json:"fecha_completado"`
	CreatedAt         time.Time   `json:"-"`
	UpdatedAt         time.Time   `json:"-"`
}

// TopicProgress tracks one user's state in one topic. The topic with order 1
// in its lesson is always treated as unlocked; everything else needs an
// explicit unlock from the cascade.
type TopicProgress struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"-" gorm:"not null;uniqueIndex:idx_topic_progress_user_topic"`
	TopicID         uint       `json:"tema_id" gorm:"not null;uniqueIndex:idx_topic_progress_user_topic"`
	State           TopicState `json:"estado" gorm:"size:20;default:'SIN_INICIAR'"`
	Unlocked        bool       `json:"desbloqueado" gorm:"default:false"`
	AccuracyPercent float64    `json:"porcentaje_acierto" gorm:"default:0"`
	AttemptsMade    uint       `json:"intentos_realizados" gorm:"default:0"`
	StartedAt       *time.Time `json:"fecha_inicio"`
	CompletedAt     *time.Time `json:"fecha_completado"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

// ExerciseResponse is one recorded answer inside the current attempt cycle.
// Rows are tied to the TopicProgress they were answered under; a retry wipes
// them, so the rows linked to a TopicProgress always form the current set.
type ExerciseResponse struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UserID              uint      `json:"-" gorm:"not null;index"`
	ExerciseID          uint      `json:"ejercicio_id" gorm:"not null;index"`
	TopicProgressID     uint      `json:"-" gorm:"not null;index"`
	UserAnswer          string    `json:"respuesta_usuario"`
	IsCorrect           bool      `json:"es_correcta"`
	UsedHint            bool      `json:"uso_ayuda" gorm:"default:false"`
	ResponseTimeSeconds int       `json:"tiempo_respuesta_segundos" gorm:"default:0"`
	CreatedAt           time.Time `json:"fecha_respuesta"`
}

// TopicAttempt is the immutable record of one finalize cycle. AttemptNumber
// starts at 1 and increases per (user, topic).
type TopicAttempt struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             uint      `json:"-" gorm:"not null;uniqueIndex:idx_attempt_user_topic_number"`
	TopicID            uint      `json:"tema_id" gorm:"not null;uniqueIndex:idx_attempt_user_topic_number"`
	TopicProgressID    uint      `json:"-" gorm:"not null"`
	AttemptNumber      uint      `json:"numero_intento" gorm:"not null;uniqueIndex:idx_attempt_user_topic_number"`
	CorrectCount       uint      `json:"ejercicios_correctos" gorm:"default:0"`
	IncorrectCount     uint      `json:"ejercicios_incorrectos" gorm:"default:0"`
	TotalCount         uint      `json:"ejercicios_totales"`
	AccuracyPercent    float64   `json:"porcentaje_acierto"`
	WithHintCount      uint      `json:"ejercicios_con_ayuda" gorm:"default:0"`
	TimeTotalSeconds   int       `json:"tiempo_total_segundos" gorm:"default:0"`
	TimeAvgSeconds     int       `json:"tiempo_promedio_por_ejercicio" gorm:"default:0"`
	Passed             bool      `json:"aprobado" gorm:"default:false"`
	ImprovementPercent float64   `json:"mejora_porcentaje"`
	StartedAt          time.Time `json:"fecha_inicio"`
	FinishedAt         time.Time `json:"fecha_finalizacion"`
}

// StudySession spans login to logout for one user.
type StudySession struct {
	ID              uint       `json:"sesion_id" gorm:"primaryKey"`
	UserID          uint       `json:"-" gorm:"not null;index"`
	Token           string     `json:"token" gorm:"size:36;uniqueIndex"`
	StartedAt       time.Time  `json:"fecha_inicio" gorm:"autoCreateTime"`
	EndedAt         *time.Time `json:"fecha_fin"`
	DurationMinutes int        `json:"duracion_minutos" gorm:"default:0"`
}

// ScreenActivity records the time a user spends on one screen. UserID is
// nullable: login and register screens are tracked before authentication.
type ScreenActivity struct {
	ID               uint       `json:"actividad_id" gorm:"primaryKey"`
	UserID           *uint      `json:"-" gorm:"index"`
	Screen           ScreenKind `json:"tipo_pantalla" gorm:"size:30;not null"`
	StartedAt        time.Time  `json:"tiempo_inicio" gorm:"autoCreateTime"`
	EndedAt          *time.Time `json:"tiempo_fin"`
	Seconds          int        `json:"tiempo_segundos" gorm:"default:0"`
	LessonID         *uint      `json:"leccion_id"`
	TopicID          *uint      `json:"tema_id"`
	ReturnsToContent uint       `json:"veces_volver_contenido" gorm:"default:0"`
}
