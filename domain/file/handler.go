package file

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cms-platform/domain/settings"
	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler serves upload, download and delete for stored files. Files live on
// the local filesystem under Dir, keyed by a generated name.
type Handler struct {
	Dir      string
	Settings *settings.Service
}

func NewHandler(dir string, svc *settings.Service) *Handler {
	return &Handler{Dir: dir, Settings: svc}
}

// UploadResponse describes a stored file.
type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

// UploadHandler accepts a single multipart file, sniffs its type from the
// first bytes and stores it under a generated name.
func (h *Handler) UploadHandler(c echo.Context) error {
	log := logger.Get().WithComponent("file")

	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "A file is required.")
	}

	src, err := header.Open()
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}
	contentType := http.DetectContentType(head[:n])
	if i := strings.IndexByte(contentType, ';'); i > 0 {
		contentType = contentType[:i]
	}

	configured := h.Settings.MaxUploadSize(c.Request().Context())
	if appErr := CheckPolicy(contentType, header.Size, configured); appErr != nil {
		return appErr
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	filename := uuid.New().String() + extensionFor(contentType)
	dst, err := os.Create(filepath.Join(h.Dir, filename))
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	log.Info("File uploaded", logger.Filename(filename), logger.Int64("size", header.Size))
	return c.JSON(http.StatusCreated, UploadResponse{
		Filename:     filename,
		OriginalName: header.Filename,
		Size:         header.Size,
	})
}

// FileInfo describes one stored file.
type FileInfo struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ListHandler returns the stored files, newest first. A missing upload
// directory just means nothing has been uploaded yet.
func (h *Handler) ListHandler(c echo.Context) error {
	entries, err := os.ReadDir(h.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, []FileInfo{})
		}
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Filename:   entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ModifiedAt.After(files[j].ModifiedAt) })

	return c.JSON(http.StatusOK, files)
}

// ServeHandler streams a stored file or 404s. The filename is reduced to its
// base so request paths cannot escape the upload directory.
func (h *Handler) ServeHandler(c echo.Context) error {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == ".." || name == "/" {
		return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "File not found.")
	}

	path := filepath.Join(h.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "File not found.")
	}
	return c.File(path)
}

// DeleteHandler removes a stored file.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("file")

	name := filepath.Base(c.Param("filename"))
	path := filepath.Join(h.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "File not found.")
	}
	if err := os.Remove(path); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	log.Info("File deleted", logger.Filename(name))
	return c.JSON(http.StatusOK, map[string]string{"message": "File deleted successfully."})
}
