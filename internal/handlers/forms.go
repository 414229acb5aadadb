package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEMultipartPOSTForm
}

// formString returns a pointer to the posted value, nil when the key is absent.
func formString(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func formBool(c *gin.Context, key string) *bool {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	b := v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "on")
	return &b
}

// formStrings reads a repeated field posted as key or key[].
func formStrings(c *gin.Context, key string) *[]string {
	for _, k := range []string{key, key + "[]"} {
		if vs, ok := c.GetPostFormArray(k); ok {
			values := make([]string, 0, len(vs))
			for _, v := range vs {
				if v != "" {
					values = append(values, v)
				}
			}
			return &values
		}
	}
	return nil
}

// formIDs reads a repeated numeric field. Unparsable entries become 0 and
// fail validation downstream.
func formIDs(c *gin.Context, key string) *[]uint64 {
	values := formStrings(c, key)
	if values == nil {
		return nil
	}
	ids := make([]uint64, len(*values))
	for i, v := range *values {
		ids[i], _ = strconv.ParseUint(v, 10, 64)
	}
	return &ids
}

// formUpload opens an uploaded file. The returned closer must be called once
// the upload has been consumed; it is nil when no file was sent.
func formUpload(c *gin.Context, key string) (*services.Upload, func(), error) {
	header, err := c.FormFile(key)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*services.Upload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &services.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}
	return upload, func() { file.Close() }, nil
}
