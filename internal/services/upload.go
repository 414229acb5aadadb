package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/constants"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// Upload is a file received with a form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

func (u *Upload) ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

func checkImage(field string, u *Upload, verr *ValidationError) {
	if u == nil {
		return
	}
	if !imageExtensions[u.ext()] {
		verr.Add(field, "Must be an image (png, jpg, gif, svg or webp).")
		return
	}
	if u.Size > constants.MaxUploadSize {
		verr.Add(field, fmt.Sprintf("May not be larger than %d MB.", constants.MaxUploadSize>>20))
	}
}
