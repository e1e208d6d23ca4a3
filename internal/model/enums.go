package model

// Coded enumeration values are stored exactly as the frontend expects them;
// each enum carries a display-label table exposed through Label().

type ExerciseKind string

const (
	ExerciseOpen           ExerciseKind = "ABIERTO"
	ExerciseMultipleChoice ExerciseKind = "MULTIPLE"
)

var exerciseKindLabels = map[ExerciseKind]string{
	ExerciseOpen:           "Respuesta Abierta",
	ExerciseMultipleChoice: "Opción Múltiple",
}

func (k ExerciseKind) Label() string { return exerciseKindLabels[k] }

type Difficulty string

const (
	DifficultyEasy   Difficulty = "FACIL"
	DifficultyMedium Difficulty = "INTERMEDIO"
	DifficultyHard   Difficulty = "DIFICIL"
)

var difficultyLabels = map[Difficulty]string{
	DifficultyEasy:   "Fácil",
	DifficultyMedium: "Intermedio",
	DifficultyHard:   "Difícil",
}

func (d Difficulty) Label() string { return difficultyLabels[d] }

type ContentKind string

const (
	ContentTheory       ContentKind = "TEORIA"
	ContentExample      ContentKind = "EJEMPLO"
	ContentExtraExample ContentKind = "EJEMPLO_EXTRA"
)

var contentKindLabels = map[ContentKind]string{
	ContentTheory:       "Teoría",
	ContentExample:      "Ejemplo",
	ContentExtraExample: "Ejemplo Extra",
}

func (k ContentKind) Label() string { return contentKindLabels[k] }

type LessonState string

const (
	LessonNotStarted LessonState = "SIN_INICIAR"
	LessonInProgress LessonState = "EN_PROGRESO"
	LessonCompleted  LessonState = "COMPLETADA"
)

var lessonStateLabels = map[LessonState]string{
	LessonNotStarted: "Sin Iniciar",
	LessonInProgress: "En Progreso",
	LessonCompleted:  "Completada",
}

func (s LessonState) Label() string { return lessonStateLabels[s] }

type TopicState string

const (
	TopicNotStarted TopicState = "SIN_INICIAR"
	TopicStarted    TopicState = "INICIADO"
	TopicCompleted  TopicState = "COMPLETADO"
)

var topicStateLabels = map[TopicState]string{
	TopicNotStarted: "Sin Iniciar",
	TopicStarted:    "Iniciado",
	TopicCompleted:  "Completado",
}

func (s TopicState) Label() string { return topicStateLabels[s] }

type ScreenKind string

const (
	ScreenLogin        ScreenKind = "LOGIN"
	ScreenRegister     ScreenKind = "REGISTRO"
	ScreenLessonList   ScreenKind = "LISTA_LECCIONES"
	ScreenLessonDetail ScreenKind = "DETALLE_LECCION"
	ScreenTopicContent ScreenKind = "CONTENIDO_TEMA"
	ScreenExercises    ScreenKind = "EJERCICIOS"
	ScreenOther        ScreenKind = "OTRA"
)

var screenKindLabels = map[ScreenKind]string{
	ScreenLogin:        "Login",
	ScreenRegister:     "Registro",
	ScreenLessonList:   "Lista de Lecciones",
	ScreenLessonDetail: "Detalle de Lección",
	ScreenTopicContent: "Contenido del Tema",
	ScreenExercises:    "Ejercicios",
	ScreenOther:        "Otra",
}

func (k ScreenKind) Label() string { return screenKindLabels[k] }

func (k ScreenKind) Valid() bool {
	_, ok := screenKindLabels[k]
	return ok
}

// Student profile enumerations used at registration time.

type Group string

var groupLabels = map[Group]string{
	"A": "Grupo A",
	"B": "Grupo B",
	"C": "Grupo C",
	"D": "Grupo D",
}

func (g Group) Label() string { return groupLabels[g] }
func (g Group) Valid() bool   { _, ok := groupLabels[g]; return ok }

type Specialty string

var specialtyLabels = map[Specialty]string{
	"INFORMATICA":    "Informática",
	"AGRONOMIA":      "Agronomía",
	"ADMINISTRACION": "Administración",
	"ELECTRONICA":    "Electrónica",
}

func (s Specialty) Label() string { return specialtyLabels[s] }
func (s Specialty) Valid() bool   { _, ok := specialtyLabels[s]; return ok }

type Gender string

var genderLabels = map[Gender]string{
	"M": "Masculino",
	"F": "Femenino",
	"O": "Otro",
	"N": "Prefiero no decir",
}

func (g Gender) Label() string { return genderLabels[g] }
func (g Gender) Valid() bool   { _, ok := genderLabels[g]; return ok }

type AgeChoice string

var ageLabels = map[AgeChoice]string{
	"14": "14 años",
	"15": "15 años",
	"16": "16 años",
	"17": "17 años",
	"18": "18 años",
}

func (a AgeChoice) Label() string { return ageLabels[a] }
func (a AgeChoice) Valid() bool   { _, ok := ageLabels[a]; return ok }

// Choice is one value/label pair of an enumeration, as served to the
// registration form.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RegistrationChoices returns the catalog of profile options in a stable order.
func RegistrationChoices() map[string][]Choice {
	return map[string][]Choice{
		"grupos":         choicesOf([]Group{"A", "B", "C", "D"}, func(g Group) string { return g.Label() }),
		"especialidades": choicesOf([]Specialty{"INFORMATICA", "AGRONOMIA", "ADMINISTRACION", "ELECTRONICA"}, func(s Specialty) string { return s.Label() }),
		"generos":        choicesOf([]Gender{"M", "F", "O", "N"}, func(g Gender) string { return g.Label() }),
		"edades":         choicesOf([]AgeChoice{"14", "15", "16", "17", "18"}, func(a AgeChoice) string { return a.Label() }),
	}
}

func choicesOf[T ~string](values []T, label func(T) string) []Choice {
	out := make([]Choice, 0, len(values))
	for _, v := range values {
		out = append(out, Choice{Value: string(v), Label: label(v)})
	}
	return out
}
