package gallery

import (
	"io"
	"strconv"
	"strings"
)

const (
	coversDir = "covers"
	photosDir = "photos"

	defaultExt = "jpg"
)

// File is one uploaded file
type File struct {
	Name        string
	ContentType string
	Size        int64 // -1 or 0 when unknown
	Body        io.Reader
}

// Ext is the text after the last dot of the name, letters and digits only, "jpg" when nothing is left
func (f File) Ext() string {
	i := strings.LastIndex(f.Name, ".")
	if i < 0 {
		return defaultExt
	}
	var ext strings.Builder
	for _, c := range f.Name[i+1:] {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			ext.WriteRune(c)
		}
	}
	if ext.Len() == 0 {
		return defaultExt
	}
	return ext.String()
}

// objectKey builds "{dir}/{albumID}/{id}.{ext}", e.g. covers/12/0b9c...e1.png
func objectKey(dir string, albumID uint64, id string, f File) string {
	return dir + "/" + strconv.FormatUint(albumID, 10) + "/" + id + "." + f.Ext()
}
