package handlers

import (
	"keepsake/auth"

	"github.com/gin-gonic/gin"
)

// Register adds the session endpoints and everything under /admin
func (h *Admin) Register(router gin.IRouter) {
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User info handlers
	router.POST("/user/login", h.UserLogin)
	authRouter.POST("/user/logout", h.UserLogout)
	authRouter.GET("/user/status", h.UserGetStatus)
	// Album handlers
	authRouter.GET("/admin/albums", h.AlbumList)
	authRouter.POST("/admin/albums/create", h.AlbumCreate)
	authRouter.POST("/admin/albums/delete", h.AlbumDelete)
	// Photo handlers
	authRouter.POST("/admin/photos/upload", h.PhotoUpload)
	authRouter.GET("/admin/photos", h.PhotoList)
	authRouter.POST("/admin/photos/delete", h.PhotoDelete)
	// Sweet message handlers
	authRouter.GET("/admin/messages", h.MessageList)
	authRouter.POST("/admin/messages/refresh", h.MessageRefresh)
	authRouter.POST("/admin/messages/add", h.MessageAdd)
	authRouter.POST("/admin/messages/toggle", h.MessageToggle)
	authRouter.POST("/admin/messages/delete", h.MessageDelete)
	// Misc
	authRouter.GET("/admin/storage", h.StorageStatus)
	authRouter.GET("/admin/ws", h.Feed.WebSocket)
}
