package photos

import (
	"context"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/photohub/photohub/internal/models"
	"github.com/photohub/photohub/pkg/logger"
	"github.com/photohub/photohub/pkg/metrics"
)

// Archiver stores an off-box copy of a committed image. Optional; a nil
// Archiver disables archival without affecting the HTTP surface.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) error
}

// Service owns the upload directory and runs the receive -> compress ->
// replace pipeline plus the listing. One instance is shared by all requests;
// all state lives on the filesystem.
type Service struct {
	dir        string
	publicPath string
	maxBytes   int64
	archive    Archiver
}

func NewService(dir, publicPath string, maxBytes int64) *Service {
	return &Service{dir: dir, publicPath: strings.TrimRight(publicPath, "/"), maxBytes: maxBytes}
}

// SetArchiver enables post-commit archival. Call before serving requests.
func (s *Service) SetArchiver(a Archiver) {
	s.archive = a
}

// Receive stores the uploaded file and returns its generated filename.
func (s *Service) Receive(fh *multipart.FileHeader) (string, error) {
	return saveUpload(fh, s.dir, s.maxBytes)
}

// Process compresses the named file in place. Unsupported formats pass
// through untouched and still count as success. On codec failure the raw
// file stays on disk and listable; the caller decides how to report that.
func (s *Service) Process(ctx context.Context, name string) error {
	path := filepath.Join(s.dir, name)
	format := formatLabel(name)

	before := fileSize(path)
	compressed, err := Compress(path)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(format, "failed").Inc()
		return err
	}
	if !compressed {
		metrics.UploadsTotal.WithLabelValues(format, "skipped").Inc()
	} else {
		metrics.UploadsTotal.WithLabelValues(format, "compressed").Inc()
		metrics.CompressionInputBytes.WithLabelValues(format).Add(float64(before))
		metrics.CompressionOutputBytes.WithLabelValues(format).Add(float64(fileSize(path)))
	}

	if s.archive != nil {
		if err := s.archiveFile(ctx, name, path); err != nil {
			// archival is additive; the upload already succeeded
			logger.Warnf("archive %s: %v", name, err)
		}
	}
	return nil
}

// URL derives the public URL for a stored filename.
func (s *Service) URL(name string) string {
	return s.publicPath + "/" + name
}

// List enumerates the upload directory and returns public URLs.
func (s *Service) List() ([]models.Photo, error) {
	return list(s.dir, s.publicPath)
}

func (s *Service) archiveFile(ctx context.Context, name, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return s.archive.Archive(ctx, name, b, ct)
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

func formatLabel(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "jpg", "jpeg", "png", "webp":
		return ext
	case "":
		return "none"
	}
	return "other"
}
