package photos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/photohub/photohub/internal/models"
)

// ErrListingUnavailable means the upload directory cannot be enumerated.
var ErrListingUnavailable = errors.New("listing unavailable")

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// list enumerates dir (non-recursive), keeps known image extensions
// (case-insensitive) and maps each name to its public URL. Order is the
// directory enumeration order, which is not creation order.
func list(dir, publicPath string) ([]models.Photo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListingUnavailable, err)
	}
	out := make([]models.Photo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, models.Photo{URL: publicPath + "/" + e.Name()})
	}
	return out, nil
}
