package handler

import (
	"bytes"
	gimage "image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/racketdb/internal/config"
	"github.com/courtside/racketdb/internal/storage"
)

func multipartUpload(t *testing.T, target string, file []byte, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(file)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != 0 {
		c.Set("user_id", uid)
	}
	return c, rec
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := gimage.NewRGBA(gimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestUploadHandler(t *testing.T) (*UploadHandler, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.New(config.StorageConfig{Driver: "local", LocalPath: dir, PublicURL: "http://cdn.test"})
	require.NoError(t, err)
	return NewUploadHandler(store), dir
}

func TestUploadProfileVariant(t *testing.T) {
	h, dir := newTestUploadHandler(t)

	c, rec := multipartUpload(t, "/api/upload?type=profile", testPNG(t, 800, 600), 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"width":400`)
	assert.Contains(t, rec.Body.String(), `"height":400`)
	assert.Contains(t, rec.Body.String(), `http://cdn.test/uploads/profile/42/`)

	// exactly one object landed on disk
	var stored []string
	require.NoError(t, filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			stored = append(stored, path)
		}
		return nil
	}))
	require.Len(t, stored, 1)
	assert.Equal(t, ".webp", filepath.Ext(stored[0]))
}

func TestUploadDefaultsToGeneral(t *testing.T) {
	h, _ := newTestUploadHandler(t)

	c, rec := multipartUpload(t, "/api/upload", testPNG(t, 640, 480), 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/uploads/general/42/")
	assert.Contains(t, rec.Body.String(), `"width":640`)
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, _ := newTestUploadHandler(t)

	c, rec := multipartUpload(t, "/api/upload", []byte("plain text"), 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejectsUnknownType(t *testing.T) {
	h, _ := newTestUploadHandler(t)

	c, rec := multipartUpload(t, "/api/upload?type=banner", testPNG(t, 200, 200), 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRequiresAuth(t *testing.T) {
	h, _ := newTestUploadHandler(t)

	c, rec := multipartUpload(t, "/api/upload", testPNG(t, 200, 200), 0)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	h, _ := newTestUploadHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(42))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
