package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
	apperrors "github.com/Sanat-Jha/Truely-FAQ/pkg/errors"
)

// Handler wires the HTTP transport to the consolidation service.
type Handler struct {
	svc    consolidation.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc consolidation.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

type submitQuestionRequest struct {
	Email    string `json:"email" binding:"required"`
	Question string `json:"question" binding:"required"`
}

type answerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type setVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// SubmitQuestion records an incoming visitor question for a site.
func (h *Handler) SubmitQuestion(c *gin.Context) {
	siteID, ok := parseUUIDParam(c, "site")
	if !ok {
		return
	}

	var req submitQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	question, err := h.svc.SubmitQuestion(c.Request.Context(), siteID, req.Email, req.Question)
	if err != nil {
		abortWithError(c, serviceError("submit_failed", err))
		return
	}

	c.JSON(http.StatusCreated, question)
}

// AnswerQuestion stores an answer and reports the consolidation outcome.
func (h *Handler) AnswerQuestion(c *gin.Context) {
	questionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req answerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	answer, result, err := h.svc.AnswerQuestion(c.Request.Context(), questionID, req.Answer)
	if err != nil {
		abortWithError(c, serviceError("answer_failed", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"answer":        answer,
		"consolidation": result,
	})
}

// ListFAQs returns the visible FAQs for a site, most frequent first.
func (h *Handler) ListFAQs(c *gin.Context) {
	siteID, ok := parseUUIDParam(c, "site")
	if !ok {
		return
	}

	faqs, err := h.svc.ListPublicFAQs(c.Request.Context(), siteID)
	if err != nil {
		abortWithError(c, serviceError("list_failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

// SetFAQVisibility toggles whether an FAQ appears in the public listing.
func (h *Handler) SetFAQVisibility(c *gin.Context) {
	faqID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req setVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	faq, err := h.svc.SetFAQVisibility(c.Request.Context(), faqID, *req.Visible)
	if err != nil {
		abortWithError(c, serviceError("visibility_failed", err))
		return
	}

	c.JSON(http.StatusOK, faq)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "malformed "+name+" id", err))
		return uuid.Nil, false
	}
	return id, true
}

func serviceError(fallbackCode string, err error) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "conflict"):
		status = http.StatusConflict
		code = "conflict"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
