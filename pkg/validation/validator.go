package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-flowgraph/pkg/flow"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxSentences       = 1000
	MaxSentenceLength  = 500
	MaxClassifierPairs = 100000
)

func init() {
	validate = validator.New()
}

// ValidateStruct checks the validate struct tags of v
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateDocument validates an annotated recipe before it is assembled
// into actions.
func ValidateDocument(doc *flow.Document) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}

	// Validate using struct tags
	if err := ValidateStruct(doc); err != nil {
		return err
	}

	if len(doc.Sentences) > MaxSentences {
		return fmt.Errorf("Sentences: maximum %d sentences allowed, got %d", MaxSentences, len(doc.Sentences))
	}

	for s, sentence := range doc.Sentences {
		if len(sentence) > MaxSentenceLength {
			return fmt.Errorf("Sentences[%d]: maximum %d tokens allowed, got %d", s, MaxSentenceLength, len(sentence))
		}
		for i, tok := range sentence {
			if tok.Head >= len(sentence) {
				return fmt.Errorf("Sentences[%d][%d]: head %d is outside the sentence", s, i, tok.Head)
			}
			if tok.Head == i {
				return fmt.Errorf("Sentences[%d][%d]: token cannot govern itself", s, i)
			}
			for _, t := range tok.Word.Tokens {
				if strings.TrimSpace(t.Text) == "" {
					return fmt.Errorf("Sentences[%d][%d]: token text is blank", s, i)
				}
			}
		}
	}

	return ValidatePairs(doc.Pairs)
}

// ValidatePairs validates classifier output pairs
func ValidatePairs(pairs []flow.Pair) error {
	if len(pairs) > MaxClassifierPairs {
		return fmt.Errorf("Pairs: maximum %d pairs allowed, got %d", MaxClassifierPairs, len(pairs))
	}
	for i := range pairs {
		if err := ValidateStruct(&pairs[i]); err != nil {
			return fmt.Errorf("Pairs[%d]: %w", i, err)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be greater than or equal to %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "lt":
			return fmt.Errorf("%s: must be less than %s", field, param)
		case "gtfield", "gtefield":
			return fmt.Errorf("%s: must not precede %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
