package photos

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader the way gin would hand it over.
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	_, fh, err := req.FormFile(field)
	require.NoError(t, err)
	return fh
}

func TestReceiveGeneratesTimestampName(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 0)

	name, err := svc.Receive(fileHeader(t, "image", "cat.png", []byte("png-bytes")))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"), "original extension kept: %s", name)

	got, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), got)
}

func TestReceiveNilHeader(t *testing.T) {
	svc := NewService(t.TempDir(), "/uploads", 0)
	_, err := svc.Receive(nil)
	require.ErrorIs(t, err, ErrNoFile)
}

func TestReceiveSizeCap(t *testing.T) {
	svc := NewService(t.TempDir(), "/uploads", 4)
	_, err := svc.Receive(fileHeader(t, "image", "big.jpg", []byte("way past the cap")))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestProcessSkipsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 0)

	original := []byte("raw gif payload")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1700000000000.gif"), original, 0o644))

	require.NoError(t, svc.Process(context.Background(), "1700000000000.gif"))

	got, err := os.ReadFile(filepath.Join(dir, "1700000000000.gif"))
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestURL(t *testing.T) {
	svc := NewService(t.TempDir(), "/uploads/", 0)
	require.Equal(t, "/uploads/17.jpg", svc.URL("17.jpg"))
}

func TestListFiltersAndMaps(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 0)

	for _, name := range []string{"a.jpg", "b.PNG", "c.webp", "d.jpeg", "notes.txt", "e.gif"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755)) // directories are skipped

	got, err := svc.List()
	require.NoError(t, err)
	require.Len(t, got, 4)
	urls := make(map[string]bool, len(got))
	for _, p := range got {
		urls[p.URL] = true
	}
	require.True(t, urls["/uploads/a.jpg"])
	require.True(t, urls["/uploads/b.PNG"])
	require.True(t, urls["/uploads/c.webp"])
	require.True(t, urls["/uploads/d.jpeg"])
}

func TestListUnreadableDir(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "does-not-exist"), "/uploads", 0)
	_, err := svc.List()
	require.ErrorIs(t, err, ErrListingUnavailable)
}

func TestListCountsUploads(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 0)

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("17000000000%02d.jpg", i)), []byte("x"), 0o644))
	}
	got, err := svc.List()
	require.NoError(t, err)
	require.Len(t, got, n)
}

type fakeArchiver struct {
	keys  []string
	types []string
	fail  bool
}

func (f *fakeArchiver) Archive(ctx context.Context, key string, data []byte, contentType string) error {
	if f.fail {
		return fmt.Errorf("archive backend down")
	}
	f.keys = append(f.keys, key)
	f.types = append(f.types, contentType)
	return nil
}

func TestProcessArchivesCommittedFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 0)
	arch := &fakeArchiver{}
	svc.SetArchiver(arch)

	writeJPEG(t, filepath.Join(dir, "1700000000010.jpg"), 90)
	require.NoError(t, svc.Process(context.Background(), "1700000000010.jpg"))

	require.Equal(t, []string{"1700000000010.jpg"}, arch.keys)
	require.Equal(t, []string{"image/jpeg"}, arch.types)
}

func TestProcessSucceedsWhenArchiverFails(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads", 0)
	svc.SetArchiver(&fakeArchiver{fail: true})

	writeJPEG(t, filepath.Join(dir, "1700000000011.jpg"), 90)
	require.NoError(t, svc.Process(context.Background(), "1700000000011.jpg"))
}
