package apihandlers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"triage/internal/app"
	"triage/pkg/classifier"
)

// Engine names accepted by the classify endpoint.
const (
	EnginePattern = "pattern"
	EngineLLM     = "llm"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// ClassifyRequest is the JSON body for POST /api/v1/classify.
type ClassifyRequest struct {
	Text   string `json:"text" binding:"required"`
	Engine string `json:"engine"`
}

// BatchRequest is the JSON body for POST /api/v1/classify/batch.
type BatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// ClassificationPayload is the wire form of a classification result,
// flattened the way callers want to consume it.
type ClassificationPayload struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Confidence      float64  `json:"confidence"`
	Priority        string   `json:"priority"`
	AutoResolvable  bool     `json:"auto_resolvable"`
	MatchedPatterns []string `json:"matched_patterns"`
}

func payloadFrom(r classifier.Result) ClassificationPayload {
	return ClassificationPayload{
		ID:              uuid.NewString(),
		Category:        r.Category.Name,
		Description:     r.Category.Description,
		Confidence:      math.Round(r.Confidence*100) / 100,
		Priority:        r.Category.Priority,
		AutoResolvable:  r.Category.AutoResolvable,
		MatchedPatterns: r.MatchedPatterns,
	}
}

// ClassifyHandler handles POST /api/v1/classify.
func (h *APIHandler) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		BadRequest(c, "text must not be empty")
		return
	}

	var useLLM bool
	switch req.Engine {
	case "", EnginePattern:
	case EngineLLM:
		useLLM = true
	default:
		BadRequest(c, "engine must be \"pattern\" or \"llm\"")
		return
	}

	result, err := h.App.Classify(c.Request.Context(), req.Text, useLLM)
	if err != nil {
		if errors.Is(err, app.ErrLLMNotConfigured) {
			Unavailable(c, err.Error())
			return
		}
		log.Errorf("LLM classification failed: %v", err)
		BadGateway(c, "classification failed: "+err.Error())
		return
	}

	payload := payloadFrom(result)
	log.Infof("API classify: id=%s engine=%s category=%s confidence=%.2f",
		payload.ID, req.Engine, payload.Category, result.Confidence)
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// ClassifyBatchHandler handles POST /api/v1/classify/batch. Batch always
// uses the pattern engine.
func (h *APIHandler) ClassifyBatchHandler(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Texts) == 0 {
		BadRequest(c, "texts must not be empty")
		return
	}

	results, err := h.App.ClassifyBatch(c.Request.Context(), req.Texts)
	if err != nil {
		BadGateway(c, "classification failed: "+err.Error())
		return
	}

	payloads := make([]ClassificationPayload, len(results))
	for i, r := range results {
		payloads[i] = payloadFrom(r)
	}
	c.JSON(http.StatusOK, gin.H{"data": payloads})
}

// CategoriesHandler handles GET /api/v1/categories.
func (h *APIHandler) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.App.Pattern.Categories()})
}
