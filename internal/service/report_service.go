package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"matelog-backend/internal/model"
	"matelog-backend/internal/repository"
	"matelog-backend/utilities"
)

// ReportService renders a student's progress into a downloadable PDF.
type ReportService interface {
	GenerateProgressReport(userID uint) (string, error)
}

type reportService struct {
	userRepo     repository.UserRepository
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
	outputDir    string
}

func NewReportService(userRepo repository.UserRepository, lessonRepo repository.LessonRepository,
	progressRepo repository.ProgressRepository, outputDir string) ReportService {
	return &reportService{
		userRepo:     userRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		outputDir:    outputDir,
	}
}

// InitReportEventListeners regenerates the student's report whenever a topic
// is completed, so the download endpoint can serve a warm file.
func InitReportEventListeners(reportService ReportService) {
	utilities.GlobalEventBus.Subscribe(EventTopicCompleted, func(data interface{}) {
		event, ok := data.(TopicCompletedEvent)
		if !ok {
			utilities.Warn("invalid payload on %s event", EventTopicCompleted)
			return
		}
		if _, err := reportService.GenerateProgressReport(event.UserID); err != nil {
			utilities.Error("failed to regenerate report for user %d: %v", event.UserID, err)
		}
	})
}

// GenerateProgressReport writes the PDF and returns its path.
func (s *reportService) GenerateProgressReport(userID uint) (string, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}
	lessons, err := s.lessonRepo.GetActiveLessons()
	if err != nil {
		return "", fmt.Errorf("failed to fetch lessons: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Reporte de progreso - %s", user.Username), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, lesson := range lessons {
		progress, err := s.progressRepo.GetLessonProgress(userID, lesson.ID)
		if err != nil {
			return "", err
		}
		state := model.LessonNotStarted
		percent := 0.0
		if progress != nil {
			state = progress.State
			percent = progress.CompletionPercent
		}

		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Leccion %d: %s", lesson.Order, lesson.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Estado: %s - Completado: %.2f%%", state.Label(), percent), "", 1, "L", false, 0, "")

		topics, err := s.lessonRepo.GetActiveTopics(lesson.ID)
		if err != nil {
			return "", err
		}
		for _, topic := range topics {
			attempts, _, err := s.progressRepo.GetAttempts(userID, topic.ID, 1, 0)
			if err != nil {
				return "", err
			}
			line := fmt.Sprintf("  Tema %d: %s - sin intentos", topic.Order, topic.Title)
			if len(attempts) > 0 {
				last := attempts[0]
				line = fmt.Sprintf("  Tema %d: %s - intento %d, %.2f%% (%d/%d)",
					topic.Order, topic.Title, last.AttemptNumber,
					last.AccuracyPercent, last.CorrectCount, last.TotalCount)
			}
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	outputPath := filepath.Join(s.outputDir, fmt.Sprintf("reporte_progreso_%d.pdf", userID))
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to save PDF: %w", err)
	}
	return outputPath, nil
}
