package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/answer-ranker/config"
	"github.com/gcbaptista/answer-ranker/internal/evaluation"
	"github.com/gcbaptista/answer-ranker/internal/ingest"
	"github.com/gcbaptista/answer-ranker/internal/pipeline"
	"github.com/gcbaptista/answer-ranker/model"
)

// maxRequestBodySize bounds rank requests.
const maxRequestBodySize = 4 << 20

// API holds dependencies for API handlers.
type API struct {
	pipeline *pipeline.Pipeline
	reports  *evaluation.ReportWriter
	logger   *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(p *pipeline.Pipeline, logger *zap.Logger) *API {
	return &API{
		pipeline: p,
		reports:  evaluation.NewConsoleReportWriter(nil, config.ColorOff),
		logger:   logger,
	}
}

// SetupRoutes defines all the API routes for the answer ranker.
func SetupRoutes(router *gin.Engine, p *pipeline.Pipeline, logger *zap.Logger) {
	apiHandler := NewAPI(p, logger)

	router.Use(RequestIDMiddleware(), LoggingMiddleware(logger), CORSMiddleware())

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", apiHandler.GetMetricsHandler)

	documentRoutes := router.Group("/documents")
	documentRoutes.Use(RequestSizeLimitMiddleware(maxRequestBodySize))
	{
		documentRoutes.POST("/_rank", apiHandler.RankDocumentHandler)
	}

	summaryRoutes := router.Group("/summary")
	{
		summaryRoutes.GET("", apiHandler.GetSummaryHandler)
		summaryRoutes.DELETE("", apiHandler.ResetSummaryHandler)
	}
}

// AnswerInput is an answer span with its gold label.
type AnswerInput struct {
	Begin     int  `json:"begin"`
	End       int  `json:"end"`
	IsCorrect bool `json:"is_correct"`
}

// Span returns the answer's span.
func (a AnswerInput) Span() model.Span {
	return model.Span{Begin: a.Begin, End: a.End}
}

// RankRequest is a single document to rank, either as raw "Q"/"A" lines or as text with spans.
type RankRequest struct {
	ID       string        `json:"id"`
	Raw      string        `json:"raw,omitempty"`
	Text     string        `json:"text,omitempty"`
	Question *model.Span   `json:"question,omitempty"`
	Answers  []AnswerInput `json:"answers,omitempty"`
	Mentions []model.Span  `json:"mentions,omitempty"`
}

// RankResponse is the outcome of ranking one document.
type RankResponse struct {
	Result model.EvaluationResult `json:"result"`
	Scores []model.AnswerScore    `json:"scores"`
	Report string                 `json:"report"`
}

// SummaryResponse is the running evaluation state of the server.
type SummaryResponse struct {
	model.EvaluationSummary
	Report string `json:"report"`
}

// ToDocument converts a validated request into a document.
func (req *RankRequest) ToDocument() (*model.Document, error) {
	var doc *model.Document
	if req.Raw != "" {
		parsed, err := ingest.ParseText(req.ID, req.Raw)
		if err != nil {
			return nil, err
		}
		doc = parsed
	} else {
		question := model.Question{Span: *req.Question}
		doc = &model.Document{
			ID:       req.ID,
			Text:     req.Text,
			Question: &question,
			Answers:  make([]model.Answer, len(req.Answers)),
		}
		for i, a := range req.Answers {
			doc.Answers[i] = model.Answer{Span: a.Span(), IsCorrect: a.IsCorrect, Index: i}
		}
	}

	mentions, err := ingest.ResolveMentions(doc, req.Mentions)
	if err != nil {
		return nil, err
	}
	doc.Mentions = mentions
	return doc, nil
}

// RankDocumentHandler scores, ranks and evaluates one document and adds it to the running summary.
// Request Body: RankRequest
func (api *API) RankDocumentHandler(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateRankRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	doc, err := req.ToDocument()
	if err != nil {
		SendRankingError(c, err)
		return
	}

	result, err := api.pipeline.ProcessDocument(doc)
	if err != nil {
		api.logger.Warn("Document skipped",
			zap.String("document", doc.ID),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		SendRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, RankResponse{
		Result: result,
		Scores: result.Scores,
		Report: api.reports.FormatDocument(result),
	})
}

// GetSummaryHandler returns the running average precision.
func (api *API) GetSummaryHandler(c *gin.Context) {
	summary := api.pipeline.Summary()
	c.JSON(http.StatusOK, SummaryResponse{
		EvaluationSummary: summary,
		Report:            evaluation.FormatSummary(summary),
	})
}

// ResetSummaryHandler clears the running accumulators and stored scores.
func (api *API) ResetSummaryHandler(c *gin.Context) {
	api.pipeline.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Summary reset"})
}

// GetMetricsHandler returns document throughput and failure counters.
func (api *API) GetMetricsHandler(c *gin.Context) {
	metrics := api.pipeline.Metrics()
	c.JSON(http.StatusOK, gin.H{
		"metrics":      metrics.Snapshot(),
		"success_rate": metrics.SuccessRate(),
	})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "answer-ranker",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
