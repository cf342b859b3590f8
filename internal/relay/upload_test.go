package relay

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadAvatar_Success(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, &Config{
		GenerateScript: writeScript(t, "exit 0"),
		UploadDir:      dir,
	})

	body, ct := multipartImage(t, "image", "face.png", "image/png", []byte("pngdata"))
	res, err := http.Post(srv.URL+"/api/upload-avatar", ct, body)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	payload := decodeBody(t, res)
	assert.Equal(t, true, payload["success"])

	imageURL, _ := payload["imageUrl"].(string)
	require.True(t, strings.HasPrefix(imageURL, "http://relay.test/uploads/"), imageURL)
	assert.True(t, strings.HasSuffix(imageURL, ".png"))

	// the file landed in the upload dir under the fabricated name
	name := filepath.Base(imageURL)
	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("pngdata"), stored)
}

func TestUploadAvatar_RejectsNonImage(t *testing.T) {
	srv := newTestServer(t, &Config{GenerateScript: writeScript(t, "exit 0")})

	body, ct := multipartImage(t, "image", "notes.txt", "text/plain", []byte("hello"))
	res, err := http.Post(srv.URL+"/api/upload-avatar", ct, body)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	payload := decodeBody(t, res)
	assert.Equal(t, false, payload["success"])
}

func TestUploadAvatar_MissingFile(t *testing.T) {
	srv := newTestServer(t, &Config{GenerateScript: writeScript(t, "exit 0")})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	res, err := http.Post(srv.URL+"/api/upload-avatar", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUploadAvatar_RejectsOversize(t *testing.T) {
	srv := newTestServer(t, &Config{GenerateScript: writeScript(t, "exit 0")})

	big := bytes.Repeat([]byte("a"), maxUploadBytes+1)
	body, ct := multipartImage(t, "image", "huge.png", "image/png", big)
	res, err := http.Post(srv.URL+"/api/upload-avatar", ct, body)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
