package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photohub/photohub/internal/photos"
)

func newPhotoRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	h := NewPhotoHandler(photos.NewService(dir, "/uploads", 0))
	r := gin.New()
	h.Register(r.Group("/api"))
	return r, dir
}

func multipartUpload(t *testing.T, r *gin.Engine, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jpegBytes(t *testing.T, quality int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 160, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 160; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}))
	return buf.Bytes()
}

func TestUploadNoFile(t *testing.T) {
	r, _ := newPhotoRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no file uploaded")
}

func TestUploadJPEGIsRecompressed(t *testing.T) {
	r, dir := newPhotoRouter(t)
	original := jpegBytes(t, 100)

	w := multipartUpload(t, r, "image", "photo.jpg", original)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp["url"], "/uploads/"))
	require.True(t, strings.HasSuffix(resp["url"], ".jpg"))

	name := strings.TrimPrefix(resp["url"], "/uploads/")
	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(stored), len(original))

	// stored bytes decode as JPEG
	_, err = jpeg.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
}

func TestUploadUnsupportedExtensionPassesThrough(t *testing.T) {
	r, dir := newPhotoRouter(t)
	original := []byte("pretend this is a gif")

	w := multipartUpload(t, r, "image", "anim.gif", original)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	name := strings.TrimPrefix(resp["url"], "/uploads/")

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, original, stored, "no-op path must leave bytes identical")
}

func TestUploadCorruptJPEGReports500ButKeepsFile(t *testing.T) {
	r, dir := newPhotoRouter(t)

	w := multipartUpload(t, r, "image", "broken.jpg", []byte("not a jpeg at all"))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed to process file", resp["message"])
	assert.NotEmpty(t, resp["error"])

	// the raw upload stays on disk and is listable
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	require.Equal(t, http.StatusOK, lw.Code)
	var list []map[string]string
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestWrongFieldNameIsRejected(t *testing.T) {
	r, _ := newPhotoRouter(t)

	w := multipartUpload(t, r, "file", "photo.jpg", jpegBytes(t, 90))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReturnsUploadedPhotos(t *testing.T) {
	r, _ := newPhotoRouter(t)

	const n = 3
	for i := 0; i < n; i++ {
		w := multipartUpload(t, r, "image", "photo.jpg", jpegBytes(t, 90))
		require.Equal(t, http.StatusOK, w.Code)
		// generated names are millisecond timestamps; space the uploads out
		time.Sleep(2 * time.Millisecond)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, n)
	for _, p := range list {
		assert.True(t, strings.HasPrefix(p["url"], "/uploads/"))
	}
}

func TestListEmptyDirectory(t *testing.T) {
	r, _ := newPhotoRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListUnreadableDirectory(t *testing.T) {
	h := NewPhotoHandler(photos.NewService(filepath.Join(t.TempDir(), "missing"), "/uploads", 0))
	r := gin.New()
	h.Register(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to read files")
}
