package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hammad983ae/sustaino-sub002/internal/assessment"
	"github.com/hammad983ae/sustaino-sub002/internal/config"
	"github.com/hammad983ae/sustaino-sub002/internal/store"
	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/output"
	"github.com/hammad983ae/sustaino-sub002/pkg/validation"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"go.uber.org/zap"
)

// Options configures the HTTP handler.
type Options struct {
	MaxUploadSize  int64
	Version        string
	AllowedOrigins []string
	// Store enables the site and valuation record endpoints when set.
	Store store.Store
}

type handler struct {
	logger        *zap.Logger
	runner        *assessment.Runner
	store         store.Store
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the valuation and
// development API.
func NewHandler(logger *zap.Logger, runner *assessment.Runner, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		runner:        runner,
		store:         opts.Store,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	router := gin.New()
	router.Use(gin.Recovery(), h.logRequests())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/version", h.handleVersion)
		api.GET("/tables", h.handleTables)

		api.POST("/valuation/reconcile", h.handleReconcile)

		api.POST("/development/proposal", h.handleProposal)
		api.POST("/development/adjust", h.handleAdjust)
		api.POST("/development/apply", h.handleApply)

		api.POST("/assessment", h.handleAssessment)

		if h.store != nil {
			api.POST("/sites", h.handleCreateSite)
			api.GET("/sites", h.handleListSites)
			api.GET("/sites/:id", h.handleGetSite)
			api.POST("/sites/:id/proposal", h.handleSiteProposal)
			api.POST("/sites/:id/apply", h.handleSiteApply)

			api.POST("/valuations", h.handleCreateValuation)
			api.GET("/valuations/:id", h.handleGetValuation)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	return router
}

func (h *handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("request served",
			zap.String("op", "server.request"),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (h *handler) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}

type tablesResponse struct {
	Zoning  zoning.Tables                `json:"zoning"`
	Weights map[string]valuation.Weights `json:"weights"`
	States  []string                     `json:"states"`
	Types   []zoning.DevelopmentType     `json:"types"`
}

func (h *handler) handleTables(c *gin.Context) {
	tables := h.runner.Tables()
	c.JSON(http.StatusOK, tablesResponse{
		Zoning:  tables,
		Weights: h.runner.Reconciler().Table().Named(),
		States:  tables.States(),
		Types:   tables.Types(),
	})
}

func (h *handler) handleReconcile(c *gin.Context) {
	const op = "server.handleReconcile"

	var req config.Valuation
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid valuation: %v", err), op)
		return
	}

	assessed, err := h.runner.AssessValuation(req)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), op)
		return
	}

	c.JSON(http.StatusOK, assessed)
}

type proposalResponse struct {
	Proposal *development.Proposal `json:"proposal"`
	Warnings []string              `json:"warnings,omitempty"`
}

func (h *handler) handleProposal(c *gin.Context) {
	const op = "server.handleProposal"

	var site development.SiteData
	if err := c.ShouldBindJSON(&site); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid site: %v", err), op)
		return
	}

	proposal, err := h.runner.Generator().Generate(site)
	if err != nil {
		h.respondEngineError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, proposalResponse{
		Proposal: proposal,
		Warnings: validation.ValidateSite("request", site, h.runner.Tables()),
	})
}

type adjustRequest struct {
	Proposal        development.Proposal   `json:"proposal"`
	Site            development.SiteData   `json:"site"`
	DevelopmentType zoning.DevelopmentType `json:"developmentType"`
}

func (h *handler) handleAdjust(c *gin.Context) {
	const op = "server.handleAdjust"

	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid adjustment: %v", err), op)
		return
	}

	proposal, err := h.runner.Generator().AdjustDevelopmentType(req.Proposal, req.DevelopmentType, req.Site)
	if err != nil {
		h.respondEngineError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, proposalResponse{Proposal: proposal})
}

type applyRequest struct {
	Proposal development.Proposal `json:"proposal"`
	Site     development.SiteData `json:"site"`
}

type applyResponse struct {
	Patch development.SitePatch `json:"patch"`
	Site  development.SiteData  `json:"site"`
}

func (h *handler) handleApply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid apply request: %v", err), "server.handleApply")
		return
	}

	patch := development.Apply(req.Proposal)
	c.JSON(http.StatusOK, applyResponse{Patch: patch, Site: req.Site.ApplyPatch(patch)})
}

type assessmentResponse struct {
	Report   *assessment.Report `json:"report"`
	CSV      string             `json:"csv"`
	Duration string             `json:"duration"`
}

func (h *handler) handleAssessment(c *gin.Context) {
	const op = "server.handleAssessment"

	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	if err := c.Request.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "missing job file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("failed to read job: %v", err), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), op)
		return
	}
	if conf.Tables.File != "" {
		h.respondError(c, http.StatusBadRequest, "uploaded jobs cannot reference a tables file", op)
		return
	}

	runner := h.runner
	if len(conf.Tables.Weights) > 0 {
		weights, err := conf.WeightTable()
		if err != nil {
			h.respondError(c, http.StatusBadRequest, err.Error(), op)
			return
		}
		runner, err = assessment.NewRunner(h.logger, weights, h.runner.Tables())
		if err != nil {
			h.respondError(c, http.StatusInternalServerError, err.Error(), op)
			return
		}
	}

	report, err := runner.Run(*conf)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, report); err != nil {
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("assessment computed",
		zap.String("op", op),
		zap.Int("valuations", len(report.Valuations)),
		zap.Int("sites", len(report.Sites)),
		zap.Duration("duration", elapsed),
	)

	c.JSON(http.StatusOK, assessmentResponse{
		Report:   report,
		CSV:      csvBuf.String(),
		Duration: elapsed.String(),
	})
}

// respondEngineError maps proposal engine errors onto HTTP statuses.
func (h *handler) respondEngineError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, development.ErrInvalidLandArea):
		h.respondError(c, http.StatusUnprocessableEntity, err.Error(), op)
	case errors.Is(err, development.ErrUnknownDevelopmentType):
		h.respondError(c, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondError(c, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondError(c *gin.Context, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	c.JSON(status, gin.H{"error": msg})
}
