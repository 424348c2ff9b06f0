package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"autojobber-backend/internal/parser"
	"autojobber-backend/internal/shared/metrics"
	"autojobber-backend/internal/shared/storage/object"
	"autojobber-backend/internal/shared/telemetry"
)

// MaxUploadBytes caps resume uploads at 5MB.
const MaxUploadBytes = 5 << 20

// Service contains business logic for resumes.
type Service struct {
	Store        object.ObjectStore
	Repo         Repo
	Parser       parser.Parser
	ParseTimeout time.Duration
}

// Upload validates the file, stores the blob, parses it, and records the new
// resume as the user's active one. The row is created only after parse
// success; on parse failure the stored blob is cleaned up best-effort.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredMime string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}

	mimeType, err := allowedMimeType(declaredMime, fileName)
	if err != nil {
		return Resume{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return Resume{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, MaxUploadBytes)
	}
	if len(data) == 0 {
		return Resume{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, err
	}

	parsed, err := s.parse(ctx, data, mimeType, fileName)
	if err != nil {
		s.cleanupBlob(ctx, storageKey)
		metrics.IncParseFailed()
		switch {
		case errors.Is(err, parser.ErrUnsupported):
			return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return Resume{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		s.cleanupBlob(ctx, storageKey)
		return Resume{}, err
	}

	resume := Resume{
		ID:               uuid.NewString(),
		UserID:           userID,
		StorageKey:       storageKey,
		OriginalFilename: fileName,
		MimeType:         mimeType,
		SizeBytes:        size,
		IsActive:         true,
		ParsedData:       parsedJSON,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.CreateActive(ctx, resume); err != nil {
		s.cleanupBlob(ctx, storageKey)
		return Resume{}, err
	}

	metrics.IncResumeUploaded()
	return resume, nil
}

// Active returns the user's active resume.
func (s *Service) Active(ctx context.Context, userID string) (Resume, error) {
	if userID == "" {
		return Resume{}, errors.New("user id required")
	}
	return s.Repo.GetActive(ctx, userID)
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Activate makes resumeID the user's only active resume. Activating the
// already-active resume is a no-op.
func (s *Service) Activate(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Activate(ctx, userID, resumeID)
}

// Delete hard-deletes the resume row, then removes the blob best-effort.
// A failed blob delete is logged and never blocks the row deletion.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, resumeID); err != nil {
		return err
	}
	s.cleanupBlob(ctx, resume.StorageKey)
	return nil
}

func (s *Service) parse(ctx context.Context, data []byte, mimeType, fileName string) (parser.ParsedResume, error) {
	timeout := s.ParseTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	parseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	parsed, err := s.Parser.Parse(parseCtx, data, mimeType, fileName)
	metrics.ObserveParseDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		if parseCtx.Err() != nil && !errors.Is(err, parser.ErrUnsupported) {
			return parser.ParsedResume{}, fmt.Errorf("%w: timeout", parser.ErrUnavailable)
		}
		return parser.ParsedResume{}, err
	}
	return parsed, nil
}

func (s *Service) cleanupBlob(ctx context.Context, storageKey string) {
	if storageKey == "" {
		return
	}
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Warn("resume.blob_cleanup_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}

func allowedMimeType(declared, fileName string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(trimmed, ";"); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	switch trimmed {
	case parser.MimePDF, parser.MimeDOCX:
		return trimmed, nil
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return parser.MimePDF, nil
	case ".docx":
		return parser.MimeDOCX, nil
	}
	return "", fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, declared)
}
