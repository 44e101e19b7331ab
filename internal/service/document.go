package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"reportapi/internal/model"
	"reportapi/internal/repository"
	"reportapi/internal/storage"
)

const (
	MinURLExpiry = 15 * time.Minute
	MaxURLExpiry = 60 * time.Minute
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.IngestedDocument `json:"data"`
	Total int                      `json:"total"`
}

// DocumentService ingests invoice files: bytes go to object storage, metadata
// to the database, and downloads are handed out as signed URLs.
type DocumentService interface {
	// Upload stores the content and its metadata, removing the object again if
	// the metadata cannot be saved. The stored name is a UUID plus the original extension.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.IngestedDocument, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document with a fresh download URL.
	Get(ctx context.Context, id string) (*model.IngestedDocument, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	urlExpiry time.Duration
	now       func() time.Time
}

// NewDocumentService constructs a DocumentService. urlExpiry is clamped to
// [MinURLExpiry, MaxURLExpiry].
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, urlExpiry time.Duration) DocumentService {
	return &documentService{
		store:     store,
		repo:      repo,
		urlExpiry: ClampURLExpiry(urlExpiry),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ClampURLExpiry bounds a signed URL lifetime.
func ClampURLExpiry(d time.Duration) time.Duration {
	return min(max(d, MinURLExpiry), MaxURLExpiry)
}

// objectKey groups uploads by month: documents/2024/03/<uuid>.pdf.
func objectKey(now time.Time, name string) string {
	return path.Join("documents", now.Format("2006/01"), name)
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.IngestedDocument, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFilename))
	genName := uuid.New().String() + ext
	key := objectKey(now, genName)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.IngestedDocument{
		ID:           uuid.New().String(),
		Filename:     genName,
		OriginalName: originalFilename,
		StoragePath:  objInfo.Key,
		Size:         objInfo.Size,
		ContentType:  objInfo.ContentType,
		CreatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// The upload is committed at this point; a signing failure only leaves the
	// URL empty and the client can fetch it with Get.
	if u, err := s.store.PresignGet(ctx, stored.StoragePath, stored.OriginalName, s.urlExpiry); err == nil {
		stored.DownloadURL = u
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) find(ctx context.Context, id string) (*model.IngestedDocument, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

func (s *documentService) Get(ctx context.Context, id string) (*model.IngestedDocument, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.store.PresignGet(ctx, doc.StoragePath, doc.OriginalName, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign download url: %w", err)
	}
	doc.DownloadURL = u
	return doc, nil
}

// Delete removes the object first; if that fails the row is kept so the
// object is not orphaned.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
