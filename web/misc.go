package web

import (
	"net/http"

	"keepsake/storage"

	"github.com/gin-gonic/gin"
)

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /admin/\nDisallow: /user/\n")
}

// ServeStorage serves objects of a disk bucket under /storage/*path
func ServeStorage(disk *storage.DiskStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		disk.Serve(c.Param("path")[1:], c.Request, c.Writer)
	}
}

// Register adds the public API and robots.txt. Object serving is added separately, for disk buckets only
func (s *Site) Register(router gin.IRouter) {
	router.GET("/api/home", s.Home)
	router.GET("/api/albums", s.AlbumList)
	router.GET("/api/albums/:id", s.AlbumView)
	router.GET("/api/note/today", s.NoteToday)
	router.GET("/api/note/surprise", s.NoteSurprise)
	router.GET("/robots.txt", DisallowRobots)
}
