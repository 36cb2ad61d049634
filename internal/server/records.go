package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hammad983ae/sustaino-sub002/internal/config"
	"github.com/hammad983ae/sustaino-sub002/internal/store"
	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/validation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
)

type siteRequest struct {
	Name string               `json:"name"`
	Site development.SiteData `json:"site"`
}

type siteResponse struct {
	Record   *store.SiteRecord `json:"record"`
	Warnings []string          `json:"warnings,omitempty"`
}

func (h *handler) handleCreateSite(c *gin.Context) {
	const op = "server.handleCreateSite"

	var req siteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid site: %v", err), op)
		return
	}

	record := &store.SiteRecord{Name: req.Name, Site: req.Site}
	if err := h.store.SaveSite(c.Request.Context(), record); err != nil {
		h.respondStoreError(c, err, op)
		return
	}

	c.JSON(http.StatusCreated, siteResponse{
		Record:   record,
		Warnings: validation.ValidateSite(req.Name, req.Site, h.runner.Tables()),
	})
}

func (h *handler) handleListSites(c *gin.Context) {
	sites, err := h.store.ListSites(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "server.handleListSites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites})
}

func (h *handler) handleGetSite(c *gin.Context) {
	record, err := h.store.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "server.handleGetSite")
		return
	}
	c.JSON(http.StatusOK, siteResponse{Record: record})
}

type siteProposalRequest struct {
	DevelopmentType zoning.DevelopmentType `json:"developmentType"`
}

func (h *handler) handleSiteProposal(c *gin.Context) {
	const op = "server.handleSiteProposal"

	// An empty body asks for the classified development type.
	var req siteProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid proposal request: %v", err), op)
		return
	}

	site, err := h.store.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, op)
		return
	}

	generator := h.runner.Generator()
	proposal, err := generator.Generate(site.Site)
	if err != nil {
		h.respondEngineError(c, err, op)
		return
	}
	if req.DevelopmentType != "" && req.DevelopmentType != proposal.DevelopmentType {
		proposal, err = generator.AdjustDevelopmentType(*proposal, req.DevelopmentType, site.Site)
		if err != nil {
			h.respondEngineError(c, err, op)
			return
		}
	}

	record := &store.ProposalRecord{SiteID: site.ID, Proposal: *proposal}
	if err := h.store.SaveProposal(c.Request.Context(), record); err != nil {
		h.respondStoreError(c, err, op)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

type siteApplyRequest struct {
	ProposalID string `json:"proposalId"`
}

type siteApplyResponse struct {
	Record *store.SiteRecord     `json:"record"`
	Patch  development.SitePatch `json:"patch"`
}

func (h *handler) handleSiteApply(c *gin.Context) {
	const op = "server.handleSiteApply"

	var req siteApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProposalID == "" {
		h.respondError(c, http.StatusBadRequest, "proposalId is required", op)
		return
	}

	ctx := c.Request.Context()
	site, err := h.store.GetSite(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, op)
		return
	}
	proposal, err := h.store.GetProposal(ctx, req.ProposalID)
	if err != nil {
		h.respondStoreError(c, err, op)
		return
	}
	if proposal.SiteID != "" && proposal.SiteID != site.ID {
		h.respondError(c, http.StatusConflict,
			fmt.Sprintf("proposal %s belongs to site %s", proposal.ID, proposal.SiteID), op)
		return
	}

	patch := development.Apply(proposal.Proposal)
	site.Site = site.Site.ApplyPatch(patch)
	if err := h.store.SaveSite(ctx, site); err != nil {
		h.respondStoreError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, siteApplyResponse{Record: site, Patch: patch})
}

func (h *handler) handleCreateValuation(c *gin.Context) {
	const op = "server.handleCreateValuation"

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

	record := &store.ValuationRecord{Name: req.Name, Inputs: assessed.Inputs, Result: assessed.Result}
	if err := h.store.SaveValuation(c.Request.Context(), record); err != nil {
		h.respondStoreError(c, err, op)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record, "warnings": assessed.Warnings})
}

func (h *handler) handleGetValuation(c *gin.Context) {
	record, err := h.store.GetValuation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "server.handleGetValuation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

func (h *handler) respondStoreError(c *gin.Context, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(c, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondError(c, http.StatusInternalServerError, err.Error(), op)
}
