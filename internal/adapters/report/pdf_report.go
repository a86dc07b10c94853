package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// PDFRenderer renders diagnosis reports as PDF files in a reports
// directory served statically by the HTTP layer.
type PDFRenderer struct {
	reportsDir string
	logger     *zap.Logger
}

// NewPDFRenderer creates a renderer writing into reportsDir.
func NewPDFRenderer(reportsDir string, logger *zap.Logger) *PDFRenderer {
	return &PDFRenderer{reportsDir: reportsDir, logger: logger}
}

// Render produces the diagnosis report and returns its file name. The
// name carries a unix-timestamp suffix so concurrent renders do not
// collide.
func (r *PDFRenderer) Render(input core.RawRecord, label string, probabilityPercent float64) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, "Laporan Hasil Deteksi Diabetes", "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 10, "Sistem Pakar Berbasis Machine Learning (Decision Tree)", "", 1, "C", false, 0, "")
		pdf.Line(10, 30, 200, 30)
		pdf.Ln(10)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Halaman %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 10, "Waktu Pemeriksaan: "+time.Now().Format("02-01-2006 15:04")+" WIB", "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "HASIL ANALISIS:", "", 1, "L", false, 0, "")

	if strings.EqualFold(label, core.LabelPositive) {
		pdf.SetTextColor(220, 53, 69)
	} else {
		pdf.SetTextColor(40, 167, 69)
	}
	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 15, strings.ToUpper(label), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Tingkat Keyakinan Model: %.2f%%", probabilityPercent), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Rincian Data Pasien:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	const (
		colLabelWidth = 80
		colValueWidth = 60
		rowHeight     = 8
	)

	// Iterate in schema order so every report lays out identically.
	for _, feature := range core.Features() {
		raw, ok := input[feature]
		if !ok {
			continue
		}
		pdf.CellFormat(colLabelWidth, rowHeight, core.Label(feature), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colValueWidth, rowHeight, displayValue(feature, raw), "1", 1, "L", false, 0, "")
	}

	filename := fmt.Sprintf("Hasil_Diagnosa_%d.pdf", time.Now().UnixNano())
	fullPath := filepath.Join(r.reportsDir, filename)
	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	r.logger.Info("Report rendered", zap.String("file", filename))
	return filename, nil
}

// displayValue translates encoded values to readable text: gender to its
// category name and 0/1 clinical flags to Ya/Tidak. Everything else is
// shown as submitted.
func displayValue(feature string, raw any) string {
	val := fmt.Sprintf("%v", raw)
	if f, ok := raw.(float64); ok && f == float64(int64(f)) {
		val = fmt.Sprintf("%d", int64(f))
	}

	if feature == "gender" {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "male", "m", "laki-laki", "l", "1":
			return "Laki-laki"
		default:
			return "Perempuan"
		}
	}

	if core.IsCategorical(feature) {
		switch val {
		case "1":
			return "Ya"
		case "0":
			return "Tidak"
		}
	}
	return val
}
