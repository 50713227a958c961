package handler

import (
    "log"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/model"
    "github.com/iliyamo/court-reservation/internal/repository"
)

// SuggestionHandler accepts customer feedback. The primary store is
// MySQL; when it fails the handler falls back to an in-memory store
// rather than rejecting the submission, since losing a suggestion on
// restart is acceptable while rejecting one is not.
type SuggestionHandler struct {
    Primary  repository.SuggestionStore
    Fallback repository.SuggestionStore
}

// NewSuggestionHandler constructs a SuggestionHandler.
func NewSuggestionHandler(primary, fallback repository.SuggestionStore) *SuggestionHandler {
    if primary == nil || fallback == nil {
        panic("nil store passed to NewSuggestionHandler")
    }
    return &SuggestionHandler{Primary: primary, Fallback: fallback}
}

type suggestionReq struct {
    Message string `json:"message"`
}

// Create handles POST /v1/suggestions.
func (h *SuggestionHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req suggestionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Message = strings.TrimSpace(req.Message)
    if req.Message == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
    }

    s := &model.Suggestion{UserID: userID, Message: req.Message}
    ctx := c.Request().Context()
    if err := h.Primary.Create(ctx, s); err != nil {
        log.Printf("suggestion: primary store failed, using fallback: %v", err)
        if err := h.Fallback.Create(ctx, s); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save suggestion"})
        }
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": s})
}

// List handles GET /v1/suggestions.
func (h *SuggestionHandler) List(c echo.Context) error {
    ctx := c.Request().Context()
    items, err := h.Primary.List(ctx)
    if err != nil {
        log.Printf("suggestion: primary store failed, using fallback: %v", err)
        items, err = h.Fallback.List(ctx)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load suggestions"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
