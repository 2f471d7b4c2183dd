package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ledger/config"

	"github.com/google/uuid"
)

// ImageStore 头像文件存储，文件名为 profile-<uuid><ext>
type ImageStore struct {
	dir       string
	maxSize   int64
	urlPrefix string
}

// NewImageStore 创建存储，urlPrefix 为静态文件路由前缀（如 /uploads）
func NewImageStore(cfg config.UploadConfig, urlPrefix string) *ImageStore {
	return &ImageStore{dir: cfg.Dir, maxSize: cfg.MaxFileSize, urlPrefix: urlPrefix}
}

// Dir 存储目录
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save 校验类型与大小后落盘，返回对外访问路径
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", NewValidationError("profile image is required")
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", NewValidationError("only image files are allowed")
	}
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", NewValidationError(fmt.Sprintf("file too large: maximum size is %d bytes", s.maxSize))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", serverError("create upload dir", err)
	}

	name := "profile-" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", serverError("open upload", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", serverError("create file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", serverError("write file", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// Remove 删除 Save 返回路径对应的文件，文件不存在时忽略
func (s *ImageStore) Remove(publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || !strings.HasPrefix(name, "profile-") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return serverError("remove file", err)
	}
	return nil
}
