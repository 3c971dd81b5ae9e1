package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
	"nanotasks/internal/services"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// Submit posts work against a task, reserving one worker slot.
// POST /api/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), principal, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListMySubmissions returns the authenticated worker's submissions.
// GET /api/submissions/worker
func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissions, err := h.submissionService.ListByWorker(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// ListReceivedSubmissions returns submissions against the buyer's tasks.
// GET /api/submissions/buyer
func (h *SubmissionHandler) ListReceivedSubmissions(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissions, err := h.submissionService.ListByBuyer(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// Approve accepts a pending submission and pays the worker.
// PATCH /api/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	submission, err := h.submissionService.Approve(c.Request.Context(), principal, submissionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// Reject declines a pending submission and releases its slot.
// PATCH /api/submissions/:id/reject
func (h *SubmissionHandler) Reject(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	submission, err := h.submissionService.Reject(c.Request.Context(), principal, submissionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}
