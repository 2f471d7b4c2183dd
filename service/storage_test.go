package service

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledger/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="profileImage"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["profileImage"][0]
}

func TestImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(config.UploadConfig{Dir: dir, MaxFileSize: 1024}, "/uploads")

	fh := newFileHeader(t, "Avatar.PNG", "image/png", []byte("png-bytes"))
	p, err := store.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p, "/uploads/profile-"))
	assert.True(t, strings.HasSuffix(p, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(p)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	// 文件名不重复
	p2, err := store.Save(newFileHeader(t, "Avatar.PNG", "image/png", []byte("x")))
	require.NoError(t, err)
	assert.NotEqual(t, p, p2)
}

func TestImageStore_Rejects(t *testing.T) {
	store := NewImageStore(config.UploadConfig{Dir: t.TempDir(), MaxFileSize: 4}, "/uploads")

	_, err := store.Save(nil)
	assert.True(t, IsValidation(err))

	_, err = store.Save(newFileHeader(t, "doc.pdf", "application/pdf", []byte("pdf")))
	require.True(t, IsValidation(err))
	assert.Equal(t, "only image files are allowed", err.Error())

	_, err = store.Save(newFileHeader(t, "big.jpg", "image/jpeg", []byte("too large")))
	assert.True(t, IsValidation(err))
}

func TestImageStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(config.UploadConfig{Dir: dir, MaxFileSize: 1024}, "/uploads")

	p, err := store.Save(newFileHeader(t, "me.jpg", "image/jpeg", []byte("jpg")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(p))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(p)))
	assert.True(t, os.IsNotExist(err))

	// 重复删除与非头像路径都不报错
	assert.NoError(t, store.Remove(p))
	assert.NoError(t, store.Remove("/uploads/../config.yaml"))
}
