package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DefaultModel is used when a request leaves the model empty.
const DefaultModel = "V5"

// Supported provider model identifiers.
const (
	ModelV3_5     = "V3_5"
	ModelV4       = "V4"
	ModelV4_5     = "V4_5"
	ModelV4_5Plus = "V4_5PLUS"
	ModelV4_5All  = "V4_5ALL"
	ModelV5       = "V5"
)

// GenerationRequest is the client payload for a new song. Empty strings are
// treated as absent.
type GenerationRequest struct {
	CustomMode   bool   `json:"customMode"`
	Instrumental bool   `json:"instrumental"`
	Prompt       string `json:"prompt,omitempty"`
	Style        string `json:"style,omitempty"`
	Title        string `json:"title,omitempty"`
	Model        string `json:"model,omitempty" validate:"oneof=V3_5 V4 V4_5 V4_5PLUS V4_5ALL V5"`
}

// WithDefaults returns a copy with the default model applied.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	r.Model = strings.TrimSpace(r.Model)
	if r.Model == "" {
		r.Model = DefaultModel
	}
	return r
}

// PromptLimit is the maximum prompt length for the given mode and model.
func PromptLimit(customMode bool, model string) int {
	if !customMode {
		return 500
	}
	if model == ModelV4 {
		return 3000
	}
	return 5000
}

// StyleLimit is the maximum style length for the given model.
func StyleLimit(model string) int {
	if model == ModelV4 {
		return 200
	}
	return 1000
}

// TitleLimit is the maximum title length for the given model.
func TitleLimit(model string) int {
	if model == ModelV4 || model == ModelV4_5All {
		return 80
	}
	return 100
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(generationRules, GenerationRequest{})
	return v
}

func generationRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(GenerationRequest)

	switch {
	case !req.CustomMode && req.Prompt == "":
		sl.ReportError(req.Prompt, "prompt", "Prompt", "required_noncustom", "")
	case req.CustomMode && !req.Instrumental && req.Prompt == "":
		sl.ReportError(req.Prompt, "prompt", "Prompt", "required_vocal", "")
	}
	if limit := PromptLimit(req.CustomMode, req.Model); utf8.RuneCountInString(req.Prompt) > limit {
		sl.ReportError(req.Prompt, "prompt", "Prompt", "max", fmt.Sprint(limit))
	}

	if req.CustomMode && req.Style == "" {
		sl.ReportError(req.Style, "style", "Style", "required_custom", "")
	}
	if limit := StyleLimit(req.Model); utf8.RuneCountInString(req.Style) > limit {
		sl.ReportError(req.Style, "style", "Style", "max", fmt.Sprint(limit))
	}

	if req.CustomMode && req.Title == "" {
		sl.ReportError(req.Title, "title", "Title", "required_custom", "")
	}
	if limit := TitleLimit(req.Model); utf8.RuneCountInString(req.Title) > limit {
		sl.ReportError(req.Title, "title", "Title", "max", fmt.Sprint(limit))
	}
}

var fieldOrder = []string{"prompt", "style", "title", "model"}

// Validate checks the request against the provider's field rules. The model
// default must already be applied. The first violation is returned as a
// *ValidationError.
func (r GenerationRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "request", Reason: err.Error()}
	}
	for _, name := range fieldOrder {
		for _, fe := range fieldErrs {
			if fe.Field() == name {
				return &ValidationError{Field: name, Reason: reasonFor(fe)}
			}
		}
	}
	return &ValidationError{Field: fieldErrs[0].Field(), Reason: reasonFor(fieldErrs[0])}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("length exceeds limit of %s characters", fe.Param())
	case "required_noncustom":
		return "is required for non-custom mode"
	case "required_vocal":
		return "is required when instrumental is false in custom mode"
	case "required_custom":
		return "is required in custom mode"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
