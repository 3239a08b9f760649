package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wuwenbin0122/persona-studio/internal/models"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultTimeout = 30 * time.Second
)

// ErrGeneration matches every *Error returned by a PersonaGenerator.
var ErrGeneration = errors.New("persona generation failed")

// PersonaGenerator turns a validated request into a complete persona draft.
type PersonaGenerator interface {
	Generate(ctx context.Context, req models.PersonaRequestInput) (*Result, error)
	Provider() string
	Model() string
}

// Result is a generated draft plus the dotted paths of fields that fell back to defaults.
type Result struct {
	Draft           models.PersonaDraft
	DefaultedFields []string
}

type CompleteOptions struct {
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
	JSONMode     bool
}

// Completer is the single capability a text-generation provider has to offer.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

type Error struct {
	Provider string
	Reason   string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrGeneration }

// Adapter is the PersonaGenerator used for every provider; only the Completer differs.
type Adapter struct {
	completer   Completer
	provider    string
	model       string
	timeout     time.Duration
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

type AdapterOptions struct {
	Provider    string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

func NewAdapter(completer Completer, opts AdapterOptions, logger *zap.Logger) *Adapter {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Adapter{
		completer:   completer,
		provider:    opts.Provider,
		model:       opts.Model,
		timeout:     timeout,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      utils.OrNop(logger),
	}
}

// New builds the adapter for the provider named in cfg.
func New(ctx context.Context, cfg utils.GenerationConfig, logger *zap.Logger) (*Adapter, error) {
	opts := AdapterOptions{
		Provider:    cfg.Provider,
		Timeout:     cfg.Timeout,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		opts.Provider = ProviderOpenAI
		opts.Model = cfg.OpenAI.Model
		return NewAdapter(NewOpenAIClient(cfg.OpenAI), opts, logger), nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		opts.Provider = ProviderGemini
		opts.Model = cfg.Gemini.Model
		return NewAdapter(client, opts, logger), nil
	default:
		return nil, fmt.Errorf("generator: unknown provider %q", cfg.Provider)
	}
}

func (a *Adapter) Provider() string { return a.provider }

func (a *Adapter) Model() string { return a.model }

// Close releases the underlying provider client when it holds resources.
func (a *Adapter) Close() error {
	if closer, ok := a.completer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (a *Adapter) Generate(ctx context.Context, req models.PersonaRequestInput) (*Result, error) {
	prompt := BuildPrompt(req)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.completer.Complete(ctx, prompt, CompleteOptions{
		SystemPrompt: SystemPrompt,
		Temperature:  a.temperature,
		MaxTokens:    a.maxTokens,
		JSONMode:     true,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Provider: a.provider, Reason: fmt.Sprintf("provider did not respond within %s", a.timeout), Err: err}
		}
		return nil, &Error{Provider: a.provider, Reason: "provider call failed", Err: err}
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, &Error{Provider: a.provider, Reason: "unparseable provider response", Err: err}
	}

	draft, defaulted := Normalize(raw)
	if len(defaulted) > 0 {
		a.logger.Warn("persona fields filled with defaults",
			zap.String("provider", a.provider),
			zap.Strings("fields", defaulted),
		)
	}

	return &Result{Draft: draft, DefaultedFields: defaulted}, nil
}
