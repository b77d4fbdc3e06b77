package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/form-service/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type uploadService struct {
	store     storage.BlobStore
	urlPrefix string
	maxBytes  int64
	logger    *slog.Logger
}

// NewUploadService stores images in store and reports them under urlPrefix.
func NewUploadService(store storage.BlobStore, urlPrefix string, maxBytes int64, logger *slog.Logger) UploadService {
	return &uploadService{
		store:     store,
		urlPrefix: urlPrefix,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

func (s *uploadService) Upload(ctx context.Context, header *multipart.FileHeader) (*UploadResult, error) {
	if header == nil {
		return nil, ErrNoFileUploaded
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, header.Size, s.maxBytes)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(header.Filename))
	}
	key, err := s.store.Put(ctx, uuid.NewString()+ext, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("Stored upload", "key", key, "mime", mtype.String(), "size", header.Size)
	return &UploadResult{File: path.Join(s.urlPrefix, key)}, nil
}
