package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/persona-studio/internal/export"
	"github.com/wuwenbin0122/persona-studio/internal/generator"
	"github.com/wuwenbin0122/persona-studio/internal/models"
	"github.com/wuwenbin0122/persona-studio/internal/persona"
	"github.com/wuwenbin0122/persona-studio/internal/store"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
	"github.com/wuwenbin0122/persona-studio/internal/validation"
)

const maxBodyBytes = 1 << 20

// PersonaService is the generate flow the handlers drive.
type PersonaService interface {
	Generate(ctx context.Context, body []byte) (*persona.Outcome, error)
	GetPersona(ctx context.Context, id int64) (*models.Persona, error)
}

type Handler struct {
	personas PersonaService
	baseURL  string
	logger   *zap.Logger
}

func NewHandler(personas PersonaService, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{personas: personas, baseURL: baseURL, logger: utils.OrNop(logger)}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	personaGroup := router.Group("/api/personas")
	personaGroup.POST("/generate", h.handleGenerate)
	personaGroup.GET("/:id", h.handleGetPersona)
	personaGroup.GET("/:id/export/pdf", h.handleExportPDF)
	personaGroup.GET("/:id/export/json", h.handleExportJSON)
	personaGroup.GET("/:id/share", h.handleShare)
}

func (h *Handler) handleGenerate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	// A client disconnect does not abort a generation in flight.
	outcome, err := h.personas.Generate(context.WithoutCancel(c.Request.Context()), body)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid persona request",
				"details": verr.Fields,
			})
		case errors.Is(err, generator.ErrGeneration):
			writeError(c, http.StatusInternalServerError, "failed to generate persona", err)
		default:
			h.internalError(c, "generate persona", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"persona":   outcome.Persona,
		"requestId": outcome.RequestID,
	})
}

func (h *Handler) handleGetPersona(c *gin.Context) {
	p, ok := h.lookupPersona(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) handleExportPDF(c *gin.Context) {
	p, ok := h.lookupPersona(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", export.AttachmentDisposition(p.Name, "pdf"))
	c.Data(http.StatusOK, export.ContentTypePDF, export.PDF(p))
}

func (h *Handler) handleExportJSON(c *gin.Context) {
	p, ok := h.lookupPersona(c)
	if !ok {
		return
	}

	doc, err := export.JSON(p)
	if err != nil {
		h.internalError(c, "export persona json", err)
		return
	}

	c.Header("Content-Disposition", export.AttachmentDisposition(p.Name, "json"))
	c.Data(http.StatusOK, export.ContentTypeJSON, doc)
}

func (h *Handler) handleShare(c *gin.Context) {
	p, ok := h.lookupPersona(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"shareLink": export.ShareLink(h.baseURL, p.ID)})
}

// lookupPersona resolves :id and writes the error response itself when it fails.
func (h *Handler) lookupPersona(c *gin.Context) (*models.Persona, bool) {
	id, ok := store.ParseID(c.Param("id"))
	if !ok {
		writeNotFound(c)
		return nil, false
	}

	p, err := h.personas.GetPersona(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(c)
		} else {
			h.internalError(c, "fetch persona", err)
		}
		return nil, false
	}

	return p, true
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func writeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "persona not found"})
}

func writeError(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
