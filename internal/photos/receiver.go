package photos

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

var (
	// ErrNoFile means the request carried no file under the expected field.
	ErrNoFile = errors.New("no file provided")
	// ErrTooLarge means the upload exceeds the configured size cap.
	ErrTooLarge = errors.New("file too large")
)

// saveUpload writes the uploaded file into dir under a generated name:
// unix milliseconds plus the original extension. Two uploads within the
// same millisecond collide; that window is accepted, not fixed.
func saveUpload(fh *multipart.FileHeader, dir string, maxBytes int64) (string, error) {
	if fh == nil {
		return "", ErrNoFile
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	_, cpErr := io.Copy(dst, src)
	clErr := dst.Close()
	if cpErr != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write %s: %w", name, cpErr)
	}
	if clErr != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("flush %s: %w", name, clErr)
	}
	return name, nil
}
