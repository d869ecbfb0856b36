// README: AI chat handler (token-guarded Gemini chat).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skycab/internal/ai"
	"skycab/internal/http/middleware"
	"skycab/internal/modules/aiusage"
)

const aiTimeout = 10 * time.Second

type AIHandler struct {
	ai      *aiusage.Service
	timeout time.Duration
}

func NewAIHandler(aiSvc *aiusage.Service, timeout time.Duration) *AIHandler {
	if timeout <= 0 {
		timeout = aiTimeout
	}
	return &AIHandler{ai: aiSvc, timeout: timeout}
}

type aiChatReq struct {
	Message string `json:"message"`
}

// Chat handles POST /api/ai/chat. Assistant failures answer with the
// fallback reply rather than an error status.
func (h *AIHandler) Chat(c *gin.Context) {
	var req aiChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	reply, err := h.ai.Chat(ctx, middleware.CallerUID(c), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, aiusage.ErrInsufficientTokens):
			writeError(c, http.StatusTooManyRequests, err.Error())
			return
		case errors.Is(err, aiusage.ErrEmptyMessage):
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		reply = ai.FallbackReply
	}

	writeJSON(c, http.StatusOK, gin.H{"reply": reply})
}

// Usage handles GET /api/ai/usage.
func (h *AIHandler) Usage(c *gin.Context) {
	u, err := h.ai.Remaining(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, u)
}
