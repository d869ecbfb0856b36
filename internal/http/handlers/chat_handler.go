// README: Saved chat handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skycab/internal/http/middleware"
	"skycab/internal/modules/chat"
	"skycab/internal/types"
)

type ChatHandler struct {
	chats *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chats: svc}
}

type saveChatReq struct {
	Title    string         `json:"title"`
	Messages []chat.Message `json:"messages"`
}

// List handles GET /api/chat.
func (h *ChatHandler) List(c *gin.Context) {
	chats, err := h.chats.List(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeChatError(c, err)
		return
	}
	if chats == nil {
		chats = []chat.Chat{}
	}
	writeJSON(c, http.StatusOK, chats)
}

// Save handles POST /api/chat/save.
func (h *ChatHandler) Save(c *gin.Context) {
	var req saveChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" || req.Messages == nil {
		writeError(c, http.StatusBadRequest, chat.ErrBadRequest.Error())
		return
	}
	saved, err := h.chats.Save(c.Request.Context(), types.ID(middleware.CallerUID(c)), req.Title, req.Messages)
	if err != nil {
		writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

func writeChatError(c *gin.Context, err error) {
	if errors.Is(err, chat.ErrBadRequest) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	_ = c.Error(err)
	writeError(c, http.StatusInternalServerError, "internal error")
}
