package handlers

import (
	"net/http"

	"keepsake/models"
	"keepsake/storage"

	"github.com/gin-gonic/gin"
)

type StorageInfo struct {
	Bucket      string `json:"bucket"`
	StorageType string `json:"storage_type"`
	Path        string `json:"path"`
	Endpoint    string `json:"endpoint,omitempty"`
	TotalSpace  uint64 `json:"total_space,omitempty"` // disk only
	FreeSpace   uint64 `json:"free_space,omitempty"`  // disk only
	Sockets     int    `json:"sockets"`
}

// StorageStatus describes where objects go, with free space for local disks
func (h *Admin) StorageStatus(c *gin.Context, user *models.User) {
	bucket := h.Storage.GetBucket()
	info := StorageInfo{
		Bucket:      bucket.Name,
		StorageType: bucket.StorageType.String(),
		Path:        bucket.Path,
		Endpoint:    bucket.Endpoint,
		Sockets:     h.Feed.Connections(),
	}
	if disk, ok := h.Storage.(*storage.DiskStorage); ok {
		info.TotalSpace = disk.GetTotalSpace()
		info.FreeSpace = disk.GetFreeSpace()
	}
	c.JSON(http.StatusOK, info)
}
