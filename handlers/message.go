package handlers

import (
	"net/http"

	"keepsake/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MessageAddRequest struct {
	Message string `form:"message"`
}

type MessageIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

func (h *Admin) MessageList(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"error": "", "messages": h.Messages.Rows()})
}

func (h *Admin) MessageRefresh(c *gin.Context, user *models.User) {
	err := h.Messages.Refresh(c.Request.Context())
	h.reply(c, user, err, "OK", gin.H{"messages": h.Messages.Rows()})
}

// MessageAdd stores a new active message. Blank text is ignored
func (h *Admin) MessageAdd(c *gin.Context, user *models.User) {
	req := MessageAddRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	_, added, err := h.Messages.Add(c.Request.Context(), req.Message)
	if err == nil && !added {
		c.JSON(http.StatusOK, gin.H{"error": "", "status": "", "messages": h.Messages.Rows()})
		return
	}
	h.reply(c, user, err, "Added.", gin.H{"messages": h.Messages.Rows()})
}

func (h *Admin) messageRow(c *gin.Context) (row models.SweetMessage, ok bool) {
	req := MessageIDRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return row, false
	}
	if row, ok = h.Messages.Find(req.ID); !ok {
		c.JSON(http.StatusNotFound, MessageNotFoundResponse)
	}
	return
}

// MessageToggle flips is_active of a message from the admin list
func (h *Admin) MessageToggle(c *gin.Context, user *models.User) {
	row, ok := h.messageRow(c)
	if !ok {
		return
	}
	_, err := h.Messages.Toggle(c.Request.Context(), row)
	h.reply(c, user, err, "OK", gin.H{"messages": h.Messages.Rows()})
}

func (h *Admin) MessageDelete(c *gin.Context, user *models.User) {
	row, ok := h.messageRow(c)
	if !ok {
		return
	}
	err := h.Messages.Remove(c.Request.Context(), row)
	h.reply(c, user, err, "Deleted.", gin.H{"messages": h.Messages.Rows()})
}
