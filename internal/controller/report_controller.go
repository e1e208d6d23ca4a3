package controller

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"matelog-backend/internal/service"
	"matelog-backend/utilities"
)

type ReportController struct {
	ReportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// GetProgressReport handles GET /reportes/progreso/. The report is
// regenerated on demand so it always reflects the latest attempts.
func (rc *ReportController) GetProgressReport(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	path, err := rc.ReportService.GenerateProgressReport(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filepath.Base(path)))
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
