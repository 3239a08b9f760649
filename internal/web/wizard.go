package web

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	FirstStep = 1
	LastStep  = 4
)

var (
	ErrStepIncomplete = errors.New("web: required fields are missing")
	ErrNotFinalStep   = errors.New("web: submit is only available on the last step")
)

type Option struct {
	Value string
	Label string
}

// Field describes one form control. Options turns it into a select.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
	Options     []Option
}

type HiddenField struct {
	Name  string
	Value string
}

type Step struct {
	Number int
	Title  string
	Fields []Field
}

var steps = []Step{
	{
		Number: 1,
		Title:  "Product Basics",
		Fields: []Field{
			{Name: "productType", Label: "Product Type", Placeholder: "Select product type...", Required: true, Options: []Option{
				{Value: "web-application", Label: "Web Application"},
				{Value: "mobile-app", Label: "Mobile App"},
				{Value: "saas-platform", Label: "SaaS Platform"},
				{Value: "ecommerce-site", Label: "E-commerce Site"},
				{Value: "content-platform", Label: "Content Platform"},
				{Value: "other", Label: "Other"},
			}},
			{Name: "industry", Label: "Industry", Placeholder: "Select industry...", Required: true, Options: []Option{
				{Value: "healthcare", Label: "Healthcare"},
				{Value: "education", Label: "Education"},
				{Value: "finance", Label: "Finance"},
				{Value: "technology", Label: "Technology"},
				{Value: "retail", Label: "Retail"},
				{Value: "media", Label: "Media"},
				{Value: "other", Label: "Other"},
			}},
			{Name: "primaryUserGoal", Label: "Primary User Goal", Placeholder: "What is the main goal users are trying to achieve with your product?", Required: true},
			{Name: "productDescription", Label: "Product Description", Placeholder: "Provide a brief description of your product and its core features...", Required: true},
		},
	},
	{
		Number: 2,
		Title:  "User Context",
		Fields: []Field{
			{Name: "userContext", Label: "User Context & Environment", Placeholder: "Describe the typical environment and context where users interact with your product..."},
			{Name: "challenges", Label: "User Challenges & Pain Points", Placeholder: "What challenges or frustrations do users typically face in this domain?"},
		},
	},
	{
		Number: 3,
		Title:  "Ethics & Trust",
		Fields: []Field{
			{Name: "ethicsConsiderations", Label: "Ethics & Bias Considerations", Placeholder: "Are there any specific ethical considerations, potential biases, or inclusivity concerns for your product?"},
			{Name: "trustFactors", Label: "Trust & Credibility Factors", Placeholder: "What factors would make users trust your product? What builds credibility in your industry?"},
		},
	},
	{
		Number: 4,
		Title:  "Additional Notes",
		Fields: []Field{
			{Name: "additionalNotes", Label: "Additional Context (Optional)", Placeholder: "Any additional information that would help create a more accurate persona for your product..."},
		},
	},
}

// Steps returns the wizard layout in order.
func Steps() []Step {
	return steps
}

// Wizard is the 4-step input form. Values carries every field across steps.
type Wizard struct {
	Step   int
	Values map[string]string
}

func NewWizard() *Wizard {
	return &Wizard{Step: FirstStep, Values: make(map[string]string)}
}

// WizardFromForm restores wizard state from a posted form. Out of range
// steps are clamped and unknown fields are dropped.
func WizardFromForm(form url.Values) *Wizard {
	w := NewWizard()

	if step, err := strconv.Atoi(strings.TrimSpace(form.Get("step"))); err == nil {
		w.Step = clampStep(step)
	}

	for _, step := range steps {
		for _, field := range step.Fields {
			if value := form.Get(field.Name); value != "" {
				w.Values[field.Name] = value
			}
		}
	}

	return w
}

// Next advances one step. Step 1 only moves on when its required fields are filled.
func (w *Wizard) Next() error {
	if w.Step == FirstStep && len(w.MissingFields()) > 0 {
		return ErrStepIncomplete
	}
	if w.Step < LastStep {
		w.Step++
	}
	return nil
}

func (w *Wizard) Back() {
	if w.Step > FirstStep {
		w.Step--
	}
}

func (w *Wizard) CanSubmit() bool {
	return w.Step == LastStep
}

// MissingFields lists required fields that are blank.
func (w *Wizard) MissingFields() []string {
	var missing []string
	for _, field := range steps[0].Fields {
		if field.Required && strings.TrimSpace(w.Values[field.Name]) == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

// Current returns the layout of the active step.
func (w *Wizard) Current() Step {
	return steps[clampStep(w.Step)-1]
}

// Hidden returns the values of fields that are not on the active step so
// the form can carry them forward.
func (w *Wizard) Hidden() []HiddenField {
	var out []HiddenField
	for _, step := range steps {
		if step.Number == w.Step {
			continue
		}
		for _, field := range step.Fields {
			if value, ok := w.Values[field.Name]; ok {
				out = append(out, HiddenField{Name: field.Name, Value: value})
			}
		}
	}
	return out
}

// Payload is the generate input built from the collected values.
func (w *Wizard) Payload() map[string]any {
	out := make(map[string]any, len(w.Values))
	for name, value := range w.Values {
		out[name] = value
	}
	return out
}

func clampStep(step int) int {
	switch {
	case step < FirstStep:
		return FirstStep
	case step > LastStep:
		return LastStep
	}
	return step
}
