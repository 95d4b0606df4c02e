package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"keepsake/gallery"
	"keepsake/logger"
	"keepsake/models"
	"keepsake/storage"
	"keepsake/sweet"
	"keepsake/utils"

	"github.com/gin-gonic/gin"
)

// Admin holds everything the signed in endpoints work with
type Admin struct {
	Gallery  *gallery.Manager
	Messages *sweet.Catalog
	Storage  storage.StorageAPI
	Feed     *StatusFeed
	// JPEG uploads larger than this are downscaled, 0 keeps them as they are
	MaxImageDimension uint
}

// reply publishes the status line and writes it back together with data
func (h *Admin) reply(c *gin.Context, user *models.User, err error, success string, data gin.H) {
	status := gallery.Status(err, success)
	h.Feed.Publish(user, status, err != nil)
	if data == nil {
		data = gin.H{}
	}
	data["status"] = status
	data["error"] = ""
	if err != nil {
		data["error"] = status
		var stageErr *gallery.StageError
		if errors.As(err, &stageErr) && len(stageErr.Orphaned) > 0 {
			data["orphaned"] = stageErr.Orphaned
		}
	}
	c.JSON(statusCode(err), data)
}

func isJPEG(fh *multipart.FileHeader) bool {
	if strings.EqualFold(fh.Header.Get("Content-Type"), "image/jpeg") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	return ext == ".jpg" || ext == ".jpeg"
}

// openFile opens an uploaded file for the gallery workflows, downscaling big JPEGs on the way
func (h *Admin) openFile(fh *multipart.FileHeader) (gallery.File, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return gallery.File{}, nil, err
	}
	file := gallery.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	if h.MaxImageDimension == 0 || !isJPEG(fh) {
		return file, f, nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return gallery.File{}, nil, err
	}
	out, fitted, err := utils.FitJPEG(h.MaxImageDimension, data)
	if err != nil {
		// Not decodable, store it the way it came
		logger.Warn("image not resized", logger.String("file", fh.Filename), logger.ErrorField(err))
		out = data
	} else if fitted.Resized {
		logger.Debug("image resized",
			logger.String("file", fh.Filename),
			logger.Int("old_x", fitted.OldX), logger.Int("old_y", fitted.OldY),
			logger.Int("new_x", fitted.NewX), logger.Int("new_y", fitted.NewY),
		)
	}
	file.Body = bytes.NewReader(out)
	file.Size = int64(len(out))
	return file, f, nil
}
