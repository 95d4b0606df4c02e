package handlers

import (
	"errors"
	"net/http"

	"keepsake/gallery"

	"gorm.io/gorm"
)

type Response struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

var (
	// Predefined errors
	OKResponse              = Response{}
	AlbumNotFoundResponse   = Response{Error: "Album not found."}
	PhotoNotFoundResponse   = Response{Error: "Photo not found."}
	MessageNotFoundResponse = Response{Error: "Message not found."}
)

// statusCode maps a workflow error to the HTTP status of the reply
func statusCode(err error) int {
	var (
		validationErr *gallery.ValidationError
		stageErr      *gallery.StageError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &stageErr) && stageErr.Committed():
		// The change went through, only the reload afterwards failed
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
