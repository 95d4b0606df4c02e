package handlers

import (
	"net/http"

	"keepsake/gallery"
	"keepsake/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumInfo struct {
	models.Album
	CoverURL string `json:"cover_url"`
}

type AlbumDeleteRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Confirm bool   `form:"confirm"`
}

func (h *Admin) albumInfo(album models.Album) AlbumInfo {
	info := AlbumInfo{Album: album}
	if album.CoverPath != nil && *album.CoverPath != "" {
		info.CoverURL = h.Storage.PublicURL(*album.CoverPath)
	}
	return info
}

func (h *Admin) albumInfos() []AlbumInfo {
	result := []AlbumInfo{}
	for _, album := range h.Gallery.Albums() {
		result = append(result, h.albumInfo(album))
	}
	return result
}

// AlbumList returns the admin album list, ?refresh=1 reloads it first
func (h *Admin) AlbumList(c *gin.Context, user *models.User) {
	if c.Query("refresh") == "" {
		c.JSON(http.StatusOK, gin.H{"error": "", "albums": h.albumInfos()})
		return
	}
	err := h.Gallery.Refresh(c.Request.Context())
	h.reply(c, user, err, "OK", gin.H{"albums": h.albumInfos()})
}

// AlbumCreate expects a multipart form with title, subtitle and an optional cover file
func (h *Admin) AlbumCreate(c *gin.Context, user *models.User) {
	var cover *gallery.File
	if fh, err := c.FormFile("cover"); err == nil {
		file, closer, err := h.openFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
			return
		}
		defer closer.Close()
		cover = &file
	} else if err != http.ErrMissingFile && err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	album, err := h.Gallery.CreateAlbum(c.Request.Context(), c.PostForm("title"), c.PostForm("subtitle"), cover)
	data := gin.H{}
	if album.ID != 0 {
		data["album"] = h.albumInfo(album)
	}
	h.reply(c, user, err, "Album created.", data)
}

// AlbumDelete removes the album with its cover, all its photos and their objects
func (h *Admin) AlbumDelete(c *gin.Context, user *models.User) {
	req := AlbumDeleteRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	album, err := h.Gallery.Album(c.Request.Context(), req.AlbumID)
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	err = h.Gallery.DeleteAlbum(c.Request.Context(), album, req.Confirm)
	h.reply(c, user, err, "Album deleted.", nil)
}
