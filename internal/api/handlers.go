package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/detect"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/explain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/pipeline"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/report"
)

// handleAnalyze accepts a multipart VCF upload plus the target drug and runs
// the full decision pipeline. Aborts map to their HTTP class; a completed run
// returns the schema-validated result verbatim.
func (s *Server) handleAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "VCF parsing failed",
			"details": "multipart field 'file' is required",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "VCF parsing failed",
			"details": "uploaded file could not be opened",
		})
		return
	}
	defer f.Close()

	// Read one byte past the limit so the pipeline sees oversized content
	content, err := io.ReadAll(io.LimitReader(f, s.cfg.Limits.MaxVcfSizeBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "VCF parsing failed",
			"details": "uploaded file could not be read",
		})
		return
	}

	mode := explain.ModeClinician
	if strings.EqualFold(c.PostForm("explanation_mode"), string(explain.ModeResearch)) {
		mode = explain.ModeResearch
	}

	in := pipeline.AnalyzeInput{
		Filename:        fileHeader.Filename,
		Content:         content,
		DrugName:        c.PostForm("drug_name"),
		PatientID:       strings.TrimSpace(c.PostForm("patient_id")),
		ExplanationMode: mode,
	}

	result, abort := s.pipeline.Analyze(c.Request.Context(), in)
	if abort != nil {
		s.logger.WithFields(logrus.Fields{
			"stage":   abort.Stage,
			"class":   abort.Class,
			"details": abort.Details,
		}).Warn("analysis aborted")
		c.JSON(abort.HTTPStatus(), gin.H{
			"error":   abort.ErrorTitle(),
			"details": abort.Details,
		})
		return
	}

	s.logger.WithFields(logrus.Fields{
		"patient_id": result.PatientID,
		"drug":       result.Drug,
		"risk_label": result.RiskAssessment.RiskLabel,
	}).Info("analysis completed")
	c.JSON(http.StatusOK, result)
}

// handleReport renders the cached analysis for a patient as a PDF document
func (s *Server) handleReport(c *gin.Context) {
	patientID := c.Param("patient_id")

	result, ok := s.store.Get(patientID)
	if !ok {
		c.JSON(http.StatusNotFound, domain.NewServiceError(
			domain.ErrNotFound,
			"Report not found",
			"no analysis result cached for patient_id "+patientID,
			c.GetString("correlation_id"),
		))
		return
	}

	pdf, err := report.BuildPDF(result)
	if err != nil {
		s.logger.WithError(err).WithField("patient_id", patientID).Error("report rendering failed")
		c.JSON(http.StatusInternalServerError, domain.NewServiceError(
			domain.ErrReportRender,
			"Report rendering failed",
			err.Error(),
			c.GetString("correlation_id"),
		))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pgx_report_`+patientID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// handleDetectDrug resolves a free-text drug mention to a supported drug name
func (s *Server) handleDetectDrug(c *gin.Context) {
	text := c.PostForm("text")
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, domain.NewServiceError(
			domain.ErrInvalidInput,
			"Invalid input",
			"form field 'text' is required",
			c.GetString("correlation_id"),
		))
		return
	}

	drug, conf, ok := detect.Match(text)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Rule engine failed",
			"details": "no supported drug found in text",
		})
		return
	}

	c.JSON(http.StatusOK, domain.DrugDetection{
		DetectedDrug: drug,
		Confidence:   conf,
		RawText:      text,
	})
}
