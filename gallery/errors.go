package gallery

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError is raised before any remote call is made
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validate(value interface{}, message string) error {
	if err := validation.Validate(value, validation.Required.Error(message)); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// Stage names the step of a workflow that failed. Steps before it took effect, steps after it never ran
type Stage string

const (
	StageAlbumInsert   Stage = "album-insert"
	StageCoverUpload   Stage = "cover-upload"
	StageCoverSave     Stage = "cover-save"
	StagePhotoUpload   Stage = "photo-upload"
	StagePhotoInsert   Stage = "photo-insert"
	StageLoadPhotos    Stage = "load-photos"
	StageStorageDelete Stage = "storage-delete"
	StagePhotoDelete   Stage = "photo-delete"
	StagePhotosDelete  Stage = "photos-delete"
	StageAlbumDelete   Stage = "album-delete"
	StageManagedReload Stage = "managed-reload"
	StageRefresh       Stage = "refresh"
)

// Status line prefixes, the remote message follows verbatim
var stagePrefix = map[Stage]string{
	StageAlbumInsert:   "",
	StageCoverUpload:   "Cover upload failed: ",
	StageCoverSave:     "Cover save failed: ",
	StagePhotoUpload:   "Upload failed: ",
	StagePhotoInsert:   "DB insert failed: ",
	StageLoadPhotos:    "Failed to load album photos: ",
	StageStorageDelete: "Storage delete failed: ",
	StagePhotoDelete:   "DB delete failed: ",
	StagePhotosDelete:  "Failed to delete photos rows: ",
	StageAlbumDelete:   "Failed to delete album row: ",
	StageManagedReload: "Load photos failed: ",
	StageRefresh:       "Albums refresh failed: ",
}

// StageError reports a remote failure inside a workflow. Nothing is rolled back
type StageError struct {
	Stage Stage
	Err   error
	// Orphaned lists objects that were stored but have no row pointing at them
	Orphaned []string
}

func (e *StageError) Error() string {
	return stagePrefix[e.Stage] + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Committed reports whether the mutation itself went through and only a reload afterwards failed
func (e *StageError) Committed() bool {
	return e.Stage == StageRefresh || e.Stage == StageManagedReload
}

// Status is the single status line shown to the admin
func Status(err error, success string) string {
	if err == nil {
		return success
	}
	return err.Error()
}
