package utils

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

type ImageFitted struct {
	Resized bool
	OldX    int
	OldY    int
	NewX    int
	NewY    int
}

// FitJPEG downscales a JPEG so that neither side is larger than maxSize.
// Smaller JPEGs and other formats are returned as they are
func FitJPEG(maxSize uint, data []byte) (out []byte, result ImageFitted, err error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, result, err
	}
	result.OldX, result.OldY = config.Width, config.Height
	result.NewX, result.NewY = config.Width, config.Height
	if format != "jpeg" || maxSize == 0 || (uint(config.Width) <= maxSize && uint(config.Height) <= maxSize) {
		return data, result, nil
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, result, err
	}
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return nil, result, err
	}
	imageRect := newImage.Bounds().Size()
	result.NewX, result.NewY = imageRect.X, imageRect.Y
	result.Resized = true
	return newBuf.Bytes(), result, nil
}
