package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docassist/internal/extractor"
	"docassist/internal/model"
	"docassist/internal/repository"
	"docassist/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("document not found")
	ErrNoFilename          = errors.New("filename is required")
	ErrExtensionNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge        = errors.New("file too large")
	ErrExtractionFailed    = errors.New("content extraction failed")
)

// allowedExtensions is the upload allow-list; it matches the formats the
// extractor can dispatch on.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
	".xlsx": true,
	".zip":  true,
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"documents"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents. Uploaded
// bytes are processed in memory; only metadata and extracted text persist.
type DocumentService interface {
	// Upload validates the file, extracts its text, saves the content record
	// to object storage and the metadata row to the DB, rolling back the
	// content object if the DB save fails. The original bytes are discarded.
	Upload(ctx context.Context, data []byte, filename string) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document's metadata by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Content returns the extracted content record for a document.
	Content(ctx context.Context, id string) (*model.ExtractedContent, error)

	// Delete removes a document's content object and metadata row.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store         storage.Storage
	repo          repository.DocumentRepository
	maxUploadSize int64
}

// NewDocumentService constructs a new DocumentService. maxUploadSize <= 0
// disables the size check.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, maxUploadSize int64) DocumentService {
	return &documentService{store: store, repo: repo, maxUploadSize: maxUploadSize}
}

func contentKey(id string) string {
	return "contents/" + id + ".json"
}

func (s *documentService) Upload(ctx context.Context, data []byte, filename string) (*model.Document, error) {
	if filename == "" {
		return nil, ErrNoFilename
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrExtensionNotAllowed, ext)
	}
	if s.maxUploadSize > 0 && int64(len(data)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, s.maxUploadSize)
	}

	content, err := extractor.Process(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	id := uuid.New().String()
	payload, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	// Write the content record first; metadata is the authoritative record,
	// so a crash here leaves nothing visible to list/get.
	key := contentKey(id)
	if _, err := s.store.Put(ctx, key, bytes.NewReader(payload), storage.PutObjectOptions{
		Size:        int64(len(payload)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"original-filename": filename,
		},
	}); err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}

	doc := &model.Document{
		ID:         id,
		Filename:   filename,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the content object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
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

// Get returns a document's metadata by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Content loads and decodes the extracted content record. A document whose
// content object is missing (e.g. a crash between the two upload writes)
// reports not-found rather than failing.
func (s *documentService) Content(ctx context.Context, id string) (*model.ExtractedContent, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rc, _, err := s.store.Get(ctx, contentKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load content: %w", err)
	}
	defer rc.Close()

	var content model.ExtractedContent
	if err := json.NewDecoder(rc).Decode(&content); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &content, nil
}

// Delete removes the content object first, then the metadata row. A missing
// content object is tolerated so a half-written upload can still be removed.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.store.Delete(ctx, contentKey(id)); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete content: %w", err)
	}
	// Repository ignores missing row errors as per contract
	return s.repo.Delete(ctx, id)
}
