package handlers

import (
	"net/http"

	"keepsake/auth"
	"keepsake/db"
	"keepsake/logger"
	"keepsake/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func userInfo(user *models.User) UserInfo {
	return UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}
}

func (h *Admin) UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	user, err := models.UserLogin(c.Request.Context(), db.Instance, postReq.Email, postReq.Password)
	if err == models.ErrInvalidLogin {
		c.JSON(http.StatusUnauthorized, Response{Error: err.Error(), Status: err.Error()})
		return
	} else if err != nil {
		logger.Error("login failed", logger.ErrorField(err))
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error(), Status: err.Error()})
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error(), Status: err.Error()})
		return
	}
	logger.Info("admin signed in", logger.Uint64("user", user.ID))
	// Signing in loads the album list
	err = h.Gallery.Refresh(c.Request.Context())
	h.reply(c, &user, err, "Signed in.", gin.H{"user": userInfo(&user), "albums": h.albumInfos()})
}

func (h *Admin) UserLogout(c *gin.Context, user *models.User) {
	if err := auth.LoadSession(c).LogoutUser(); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error(), Status: err.Error()})
		return
	}
	h.Feed.Publish(user, "Signed out.", false)
	c.JSON(http.StatusOK, Response{Status: "Signed out."})
}

func (h *Admin) UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"error": "", "user": userInfo(user), "last": h.Feed.Last()})
}
