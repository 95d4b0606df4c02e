package handlers

import (
	"net/http"
	"strconv"

	"keepsake/gallery"
	"keepsake/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PhotoInfo struct {
	models.Photo
	URL string `json:"url"`
}

type PhotoDeleteRequest struct {
	PhotoID uint64 `form:"photo_id" binding:"required"`
	Confirm bool   `form:"confirm"`
}

func (h *Admin) photoInfos(photos []models.Photo) []PhotoInfo {
	result := make([]PhotoInfo, 0, len(photos))
	for _, p := range photos {
		result = append(result, PhotoInfo{Photo: p, URL: h.Storage.PublicURL(p.StoragePath)})
	}
	return result
}

// PhotoUpload expects a multipart form with album_id, one or more "photos" files and an optional note
func (h *Admin) PhotoUpload(c *gin.Context, user *models.User) {
	albumID, _ := strconv.ParseUint(c.PostForm("album_id"), 10, 64)
	files := []gallery.File{}
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["photos"] {
			file, closer, err := h.openFile(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
				return
			}
			defer closer.Close()
			files = append(files, file)
		}
	} else if err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}

	photos, err := h.Gallery.UploadPhotos(c.Request.Context(), albumID, files, c.PostForm("note"))
	h.reply(c, user, err, "Upload complete.", gin.H{"photos": h.photoInfos(photos)})
}

// PhotoList opens the "manage photos" view on ?album_id, newest first
func (h *Admin) PhotoList(c *gin.Context, user *models.User) {
	albumID, _ := strconv.ParseUint(c.Query("album_id"), 10, 64)
	photos, err := h.Gallery.LoadPhotos(c.Request.Context(), albumID)
	if err != nil {
		h.reply(c, user, err, "", gin.H{"album_id": albumID, "photos": []PhotoInfo{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "album_id": albumID, "photos": h.photoInfos(photos)})
}

// PhotoDelete removes the object first and the row after it
func (h *Admin) PhotoDelete(c *gin.Context, user *models.User) {
	req := PhotoDeleteRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	photo, err := h.Gallery.Photo(c.Request.Context(), req.PhotoID)
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, PhotoNotFoundResponse)
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	err = h.Gallery.DeletePhoto(c.Request.Context(), photo, req.Confirm)
	albumID, photos := h.Gallery.ManagedPhotos()
	h.reply(c, user, err, "Photo deleted.", gin.H{"album_id": albumID, "photos": h.photoInfos(photos)})
}
