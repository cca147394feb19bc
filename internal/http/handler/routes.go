package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docassist/internal/llm"
	"docassist/internal/service"
)

const defaultTemperature = 0.7

// queryRequest is the body of POST /query.
type queryRequest struct {
	DocumentID  string   `json:"document_id"`
	Question    string   `json:"question"`
	Temperature *float32 `json:"temperature"`
}

// uploadResponse confirms an in-memory processed upload.
type uploadResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers translate service errors to status codes and stay free of
// business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, querySvc service.QueryService) {
	app.Get("/", Root())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents", ListDocuments(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))

	app.Post("/query", QueryDocument(querySvc))
}

// Root describes the API surface.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":  "LLM Document Assistant API",
			"version":  "1.0.0",
			"security": "In-memory processing - no original files stored",
			"endpoints": fiber.Map{
				"upload":    "POST /documents",
				"query":     "POST /query",
				"documents": "GET /documents",
				"delete":    "DELETE /documents/{id}",
			},
		})
	}
}

// HealthCheck reports DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// UploadDocument accepts a multipart upload (field name: file), extracts its
// text in memory, and persists metadata plus extracted content only.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		doc, err := svc.Upload(c.UserContext(), data, fh.Filename)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoFilename),
				errors.Is(err, service.ErrExtensionNotAllowed):
				return writeError(c, fiber.StatusBadRequest, "FILE_TYPE_NOT_ALLOWED", "file type not allowed")
			case errors.Is(err, service.ErrFileTooLarge):
				return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file too large")
			case errors.Is(err, service.ErrExtractionFailed):
				return writeError(c, fiber.StatusUnprocessableEntity, "EXTRACTION_FAILED", "document could not be processed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			Status:     "success",
			Message:    "Document processed successfully (in-memory, no file stored)",
		})
	}
}

// QueryDocument answers a question about a stored document.
func QueryDocument(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.DocumentID == "" {
			return writeError(c, fiber.StatusBadRequest, "DOCUMENT_ID_REQUIRED", "document_id is required")
		}

		temperature := float32(defaultTemperature)
		if req.Temperature != nil {
			temperature = *req.Temperature
		}

		res, err := svc.Query(c.UserContext(), req.DocumentID, req.Question, temperature)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrQuestionRequired):
				return writeError(c, fiber.StatusBadRequest, "QUESTION_REQUIRED", "question is required")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrNoContent):
				return writeError(c, fiber.StatusBadRequest, "NO_CONTENT", "document has no extractable content")
			case errors.Is(err, llm.ErrAPIKeyMissing):
				return writeError(c, fiber.StatusInternalServerError, "LLM_NOT_CONFIGURED", "completion API key not configured")
			case errors.Is(err, llm.ErrUpstream):
				return writeError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR", "completion endpoint failed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// ListDocuments returns stored document metadata with limit & offset.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetDocument returns one document's metadata by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document's metadata and extracted content.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
