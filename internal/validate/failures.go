package validate

import (
	"strings"
)

// Field names a form input; values match the form and JSON keys.
type Field string

const (
	FieldUsername    Field = "username"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
	FieldCategory    Field = "category"
	FieldIngredients Field = "ingredients"
	FieldPrepTime    Field = "preparationTime"
)

type Reason int

const (
	Missing Reason = iota
	TooShort
	Invalid
)

type Failure struct {
	Field  Field
	Reason Reason
}

// Message is the text shown next to the field.
func (f Failure) Message() string {
	switch f.Field {
	case FieldUsername:
		if f.Reason == TooShort {
			return "Username must be at least 3 characters"
		}
		return "Username is required"
	case FieldTitle:
		return "Title is required"
	case FieldDescription:
		return "Description is required"
	case FieldPrice:
		return "Valid price is required"
	case FieldCategory:
		return "Category is required"
	case FieldIngredients:
		return "Ingredients are required"
	case FieldPrepTime:
		return "Valid preparation time is required"
	}
	return "Invalid input"
}

// Failures is every rule a submission broke, in form order.
type Failures []Failure

func (fs Failures) Error() string {
	msgs := make([]string, len(fs))
	for i, f := range fs {
		msgs[i] = f.Message()
	}
	return strings.Join(msgs, "; ")
}

func (fs Failures) Has(f Field) bool {
	for _, x := range fs {
		if x.Field == f {
			return true
		}
	}
	return false
}

// Map keys messages by field for templates and JSON bodies.
func (fs Failures) Map() map[string]string {
	out := make(map[string]string, len(fs))
	for _, f := range fs {
		out[string(f.Field)] = f.Message()
	}
	return out
}
