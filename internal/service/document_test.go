package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"docassist/internal/model"
	"docassist/internal/repository"
	repoMocks "docassist/internal/repository/mocks"
	"docassist/internal/storage"
	storeMocks "docassist/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		data       []byte
		filename   string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "happy path txt",
			data:     []byte("hello world"),
			filename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "contents/") && strings.HasSuffix(key, ".json")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "application/json" &&
						opt.Metadata["original-filename"] == "test.txt"
				})).Return(storage.ObjectInfo{}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.ID != "" && doc.Filename == "test.txt" && doc.Size == 11
				})).Return(&model.Document{ID: "gen-id", Filename: "test.txt"}, nil)
			},
		},
		{
			name:     "missing filename",
			data:     []byte("x"),
			filename: "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
			},
			wantErr: ErrNoFilename,
		},
		{
			name:     "extension not allowed",
			data:     []byte("MZ"),
			filename: "virus.exe",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
			},
			wantErr: ErrExtensionNotAllowed,
		},
		{
			name:     "upload too large",
			data:     []byte(strings.Repeat("x", 2048)),
			filename: "big.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
			},
			wantErr: ErrFileTooLarge,
		},
		{
			name:     "malformed document",
			data:     []byte("not a real spreadsheet"),
			filename: "broken.xlsx",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
			},
			wantErr: ErrExtractionFailed,
		},
		{
			name:     "storage error",
			data:     []byte("hello"),
			filename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "save content: storage fail",
		},
		{
			name:     "repository error with successful rollback",
			data:     []byte("hello"),
			filename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:     "repository error with failed rollback",
			data:     []byte("hello"),
			filename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, 1024)

			tt.setupMocks(mStore, mRepo)

			doc, err := svc.Upload(ctx, tt.data, tt.filename)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo, 0)

		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Filename: "a.txt"}, nil)

		doc, err := svc.Get(ctx, "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo, 0)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository), 0)
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo, 0)

		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Document]{
				Items: []model.Document{{ID: "doc-1"}},
				Total: 1,
			}, nil)

		res, err := svc.List(ctx, 0, -5)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("repo error", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo, 0)

		mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.List(ctx, 10, 0)
		assert.Error(t, err)
	})
}

func TestDocumentService_Content(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, new(repoMocks.MockDocumentRepository), 0)

		body := `{"format":"txt","content":"hello world"}`
		mStore.On("Get", ctx, "contents/doc-1.json").
			Return(io.NopCloser(strings.NewReader(body)), storage.ObjectInfo{}, nil)

		content, err := svc.Content(ctx, "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, model.FormatTXT, content.Format)
		assert.Equal(t, "hello world", content.Text)
	})

	t.Run("missing content record reports not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, new(repoMocks.MockDocumentRepository), 0)

		mStore.On("Get", ctx, "contents/doc-1.json").
			Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, err := svc.Content(ctx, "doc-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("corrupt record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, new(repoMocks.MockDocumentRepository), 0)

		mStore.On("Get", ctx, "contents/doc-1.json").
			Return(io.NopCloser(strings.NewReader("{broken")), storage.ObjectInfo{}, nil)

		_, err := svc.Content(ctx, "doc-1")
		assert.Error(t, err)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes content and metadata", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, 0)

		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mStore.On("Delete", ctx, "contents/doc-1.json").Return(nil)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "doc-1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing content object is tolerated", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, 0)

		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mStore.On("Delete", ctx, "contents/doc-1.json").Return(storage.ErrObjectNotFound)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "doc-1"))
	})

	t.Run("unknown document", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, 0)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})
}
