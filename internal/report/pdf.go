package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Page-description types for pdfcpu's create API. The report is composed as
// a JSON page description and rendered in memory.
type pageDescription struct {
	Paper  string              `json:"paper"`
	Origin string              `json:"origin"`
	Pages  map[string]pageSpec `json:"pages"`
}

type pageSpec struct {
	Content pageContent `json:"content"`
}

type pageContent struct {
	Text []textBox `json:"text"`
}

type textBox struct {
	Value  string   `json:"value"`
	Anchor string   `json:"anchor"`
	Dx     float64  `json:"dx"`
	Dy     float64  `json:"dy"`
	Font   fontSpec `json:"font"`
}

type fontSpec struct {
	Name  string  `json:"name"`
	Size  int     `json:"size"`
	Color string  `json:"col,omitempty"`
}

const (
	headerBlue = "#2563EB"
	bodyFont   = "Helvetica"
	headFont   = "Helvetica-Bold"
)

// BuildPDF renders the cached analysis result as a single-page clinical
// report. Uses existing computed data only.
func BuildPDF(result *domain.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to render")
	}

	lines := []textBox{
		heading("Pharmacogenomic Clinical Report", 16, -40),
	}

	y := -80.0
	addField := func(label, value string) {
		lines = append(lines, heading(label, 11, y))
		y -= 16
		lines = append(lines, body(value, y))
		y -= 24
	}

	addField("Patient ID", result.PatientID)
	addField("Drug analyzed", string(result.Drug))
	addField("Report timestamp", result.Timestamp)
	addField("Gene", string(result.PharmacogenomicProfile.Gene))
	addField("Diplotype", result.PharmacogenomicProfile.Diplotype)
	addField("Phenotype", result.PharmacogenomicProfile.Phenotype)
	addField("Risk label", string(result.RiskAssessment.RiskLabel))
	addField("Severity", string(result.RiskAssessment.Severity))
	addField("Confidence score", fmt.Sprintf("%.2f", result.RiskAssessment.ConfidenceScore))
	addField("Clinical recommendation", result.ClinicalRecommendation.DoseAdjustment)
	addField("Alternative options", result.ClinicalRecommendation.AlternativeOptions)
	addField("Guideline reference", result.ClinicalRecommendation.GuidelineReference)

	desc := pageDescription{
		Paper:  "A4",
		Origin: "upperLeft",
		Pages: map[string]pageSpec{
			"1": {Content: pageContent{Text: lines}},
		},
	}

	descJSON, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("marshal page description: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(descJSON), &buf, nil); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(text string, size int, dy float64) textBox {
	return textBox{
		Value:  text,
		Anchor: "tl",
		Dx:     72,
		Dy:     dy,
		Font:   fontSpec{Name: headFont, Size: size, Color: headerBlue},
	}
}

func body(text string, dy float64) textBox {
	return textBox{
		Value:  text,
		Anchor: "tl",
		Dx:     72,
		Dy:     dy,
		Font:   fontSpec{Name: bodyFont, Size: 10},
	}
}
