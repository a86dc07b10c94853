package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// recentLogLimit is how many audit rows the logs endpoint returns.
const recentLogLimit = 100

// MetadataSource serves the metadata document of the loaded model.
type MetadataSource interface {
	Metadata() map[string]any
}

// Handler carries the API endpoints and their dependencies.
type Handler struct {
	service  *core.PredictionService
	audit    core.AuditLog
	renderer core.ReportRenderer
	metadata MetadataSource
	logger   *zap.Logger
}

// NewHandler creates the API handler set.
func NewHandler(
	service *core.PredictionService,
	audit core.AuditLog,
	renderer core.ReportRenderer,
	metadata MetadataSource,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		service:  service,
		audit:    audit,
		renderer: renderer,
		metadata: metadata,
		logger:   logger,
	}
}

// Predict handles POST /api/predict.
func (h *Handler) Predict(c *gin.Context) {
	var record core.RawRecord
	if err := c.ShouldBindJSON(&record); err != nil || len(record) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Format JSON tidak valid"})
		return
	}

	result, err := h.service.Predict(c.Request.Context(), record)
	if err != nil {
		var invalid *core.InvalidInputError
		switch {
		case errors.Is(err, core.ErrModelUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Model ML belum siap/hilang."})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": invalid.Reasons})
		default:
			h.logger.Error("Prediction failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"label":               result.Label,
		"probability_percent": result.ProbabilityPercent,
		"risk_level":          result.RiskLevel,
		"feature_importance":  result.FeatureImportance,
		"input_data":          result.InputData,
	})
}

type reportRequest struct {
	InputData   core.RawRecord `json:"input_data"`
	Label       string         `json:"label"`
	Probability any            `json:"probability"`
}

// DownloadReport handles POST /api/download-report.
func (h *Handler) DownloadReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Format JSON tidak valid"})
		return
	}
	if len(req.InputData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Data input hilang."})
		return
	}

	probability, err := parseProbability(req.Probability)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Format probability tidak valid"})
		return
	}

	filename, err := h.renderer.Render(req.InputData, req.Label, probability)
	if err != nil {
		h.logger.Error("Report rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal generate PDF"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"download_url": "/static/reports/" + filename,
	})
}

// Logs handles GET /api/logs.
func (h *Handler) Logs(c *gin.Context) {
	entries, err := h.audit.Recent(c.Request.Context(), recentLogLimit)
	if err != nil {
		h.logger.Error("Failed to read audit log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membaca log"})
		return
	}

	logs := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		row := gin.H{
			"timestamp":   entry.Timestamp.Format("2006-01-02 15:04:05"),
			"prediction":  placeholder(entry.Prediction),
			"probability": placeholder(entry.Probability),
		}
		for _, feature := range core.Features() {
			val := ""
			if v, ok := entry.Input[feature]; ok && v != nil {
				val = strings.TrimSpace(stringify(v))
			}
			row[feature] = placeholder(val)
		}
		logs = append(logs, row)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}

// ModelInfo handles GET /api/model-info.
func (h *Handler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.metadata.Metadata())
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"message": "Server Diabetes Detector Berjalan!",
	})
}

// parseProbability accepts either a number or a percent string such as
// "85.23%", the two shapes the frontend sends back.
func parseProbability(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if trimmed == "" {
			return 0, nil
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, errors.New("unsupported probability type")
	}
}

func placeholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
