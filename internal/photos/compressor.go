package photos

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Re-encode profiles, fixed to match the original service's output.
const jpegQuality = 70

// profileFor maps a file extension to its re-encode profile. The bool is
// false for extensions the dispatcher leaves untouched (.webp included).
func profileFor(ext string) (imaging.Format, []imaging.EncodeOption, bool) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return imaging.JPEG, []imaging.EncodeOption{imaging.JPEGQuality(jpegQuality)}, true
	case ".png":
		return imaging.PNG, []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestCompression)}, true
	}
	return 0, nil, false
}

// Compress re-encodes the file at path in place according to its extension
// profile and reports whether a re-encode happened. Unsupported extensions
// are a silent no-op: the file is left byte-identical and Compress returns
// (false, nil). Callers must not assume every accepted upload was actually
// compressed.
//
// On decode or encode failure the original file is left in place untouched.
func Compress(path string) (bool, error) {
	format, opts, ok := profileFor(filepath.Ext(path))
	if !ok {
		return false, nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return false, fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := replace(path, buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}
