package advisor

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// maxUploadSize caps the supporting document at 5 MiB.
const maxUploadSize = 5 << 20

// allowedUploads maps the accepted file extensions to the content-type tag
// stored alongside the document bytes.
var allowedUploads = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var (
	errUploadTooLarge   = errors.New("document exceeds the 5 MiB limit")
	errUploadBadType    = errors.New("document type not allowed")
	errUploadNoFilename = errors.New("document filename is missing")
	errUploadEmpty      = errors.New("document is empty")
)

// checkUpload validates filename and size against the allow-list and returns
// the content-type tag to store. Empty files are rejected here so an
// attached document can always be read back.
func checkUpload(filename string, size int64) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", errUploadNoFilename
	}

	if size == 0 {
		return "", errUploadEmpty
	}

	if size > maxUploadSize {
		return "", errUploadTooLarge
	}

	tag, ok := allowedUploads[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", errUploadBadType
	}

	return tag, nil
}
