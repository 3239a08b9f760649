package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/persona-studio/internal/export"
	"github.com/wuwenbin0122/persona-studio/internal/models"
	"github.com/wuwenbin0122/persona-studio/internal/persona"
	"github.com/wuwenbin0122/persona-studio/internal/store"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
	"github.com/wuwenbin0122/persona-studio/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	actionNext   = "next"
	actionBack   = "back"
	actionSubmit = "submit"
)

const (
	msgStepIncomplete = "Please fill in every required field before continuing."
	msgNotFinalStep   = "Complete every step before generating a persona."
	msgInvalidInput   = "Some answers are missing or too long. Go back and check the first step."
	msgGenerateFailed = "Failed to generate persona. Please try again."
	msgUnknownAction  = "Unknown wizard action."
)

// PersonaService is the generate flow the wizard drives.
type PersonaService interface {
	GenerateFromFields(ctx context.Context, fields map[string]any) (*persona.Outcome, error)
	GetPersona(ctx context.Context, id int64) (*models.Persona, error)
}

type Toast struct {
	Title   string
	Message string
	Error   bool
}

type wizardPage struct {
	Title  string
	Wizard *Wizard
	Steps  []Step
	Toast  *Toast
}

type personaPage struct {
	Title    string
	Persona  *models.Persona
	FileBase string
	Demo     bool
}

type notFoundPage struct {
	Title string
}

type Handler struct {
	personas  PersonaService
	templates *template.Template
	logger    *zap.Logger
}

func NewHandler(personas PersonaService, logger *zap.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"fieldValue": func(w *Wizard, name string) string { return w.Values[name] },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{personas: personas, templates: tmpl, logger: utils.OrNop(logger)}, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		router.StaticFS("/static", http.FS(static))
	}

	router.GET("/", h.handleIndex)
	router.POST("/wizard", h.handleWizard)
	router.GET("/persona/:id", h.handlePersona)
	router.GET("/demo", h.handleDemo)
}

func (h *Handler) handleIndex(c *gin.Context) {
	h.renderWizard(c, http.StatusOK, NewWizard(), nil)
}

func (h *Handler) handleWizard(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.renderWizard(c, http.StatusBadRequest, NewWizard(), errorToast(msgUnknownAction))
		return
	}

	w := WizardFromForm(c.Request.PostForm)

	switch strings.TrimSpace(c.PostForm("action")) {
	case actionNext:
		if err := w.Next(); err != nil {
			h.renderWizard(c, http.StatusUnprocessableEntity, w, errorToast(msgStepIncomplete))
			return
		}
		h.renderWizard(c, http.StatusOK, w, nil)
	case actionBack:
		w.Back()
		h.renderWizard(c, http.StatusOK, w, nil)
	case actionSubmit:
		h.submit(c, w)
	default:
		h.renderWizard(c, http.StatusBadRequest, w, errorToast(msgUnknownAction))
	}
}

func (h *Handler) submit(c *gin.Context, w *Wizard) {
	if !w.CanSubmit() {
		h.renderWizard(c, http.StatusBadRequest, w, errorToast(msgNotFinalStep))
		return
	}

	outcome, err := h.personas.GenerateFromFields(context.WithoutCancel(c.Request.Context()), w.Payload())
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			h.renderWizard(c, http.StatusUnprocessableEntity, w, errorToast(msgInvalidInput))
			return
		}
		h.logger.Error("wizard generation failed", zap.Error(err))
		h.renderWizard(c, http.StatusInternalServerError, w, errorToast(msgGenerateFailed))
		return
	}

	c.Redirect(http.StatusSeeOther, "/persona/"+strconv.FormatInt(outcome.Persona.ID, 10))
}

func (h *Handler) handlePersona(c *gin.Context) {
	id, ok := store.ParseID(c.Param("id"))
	if !ok {
		h.renderNotFound(c)
		return
	}

	p, err := h.personas.GetPersona(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.logger.Error("fetch persona for card", zap.Int64("persona_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	h.render(c, http.StatusOK, "persona.html", personaPage{
		Title:    p.Name,
		Persona:  p,
		FileBase: export.BaseName(p.Name),
	})
}

// handleDemo shows the sample persona without export or share actions.
func (h *Handler) handleDemo(c *gin.Context) {
	p := DemoPersona()
	h.render(c, http.StatusOK, "persona.html", personaPage{
		Title:   "Demo persona",
		Persona: p,
		Demo:    true,
	})
}

func (h *Handler) renderWizard(c *gin.Context, status int, w *Wizard, toast *Toast) {
	h.render(c, status, "wizard.html", wizardPage{
		Title:  "Create a persona",
		Wizard: w,
		Steps:  Steps(),
		Toast:  toast,
	})
}

func (h *Handler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found.html", notFoundPage{Title: "Persona not found"})
}

// render executes into a buffer; on a template error nothing is written.
func (h *Handler) render(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render template", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func errorToast(message string) *Toast {
	return &Toast{Title: "Something went wrong", Message: message, Error: true}
}
