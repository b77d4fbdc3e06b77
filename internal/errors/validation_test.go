package errors

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "must not be blank", "   ")

	if err.Field != "title" {
		t.Errorf("Expected field to be 'title', got '%s'", err.Field)
	}

	if err.Message != "must not be blank" {
		t.Errorf("Expected message to be 'must not be blank', got '%s'", err.Message)
	}

	if err.Value != "   " {
		t.Errorf("Expected value to be preserved, got '%v'", err.Value)
	}

	expected := "validation error on field 'title': must not be blank"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs.Append("title", "is required", nil)
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs.Append("questions[0].type", "must be a valid question type", "essay")
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestToValidationErrors(t *testing.T) {
	type item struct {
		Name string `validate:"required"`
	}
	type payload struct {
		Title string `validate:"required,max=5"`
		Items []item `validate:"dive"`
	}

	err := validator.New().Struct(payload{Title: "far too long", Items: []item{{}}})
	errs := ToValidationErrors(err)

	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}
	if errs[0].Field != "Title" || errs[0].Rule != "max" {
		t.Errorf("Unexpected first error: %+v", errs[0])
	}
	if !strings.HasPrefix(errs[1].Field, "Items[0]") {
		t.Errorf("Expected nested field path, got '%s'", errs[1].Field)
	}
	if errs[1].Message != "is required" {
		t.Errorf("Expected 'is required', got '%s'", errs[1].Message)
	}
}

func TestToValidationErrors_NonValidatorError(t *testing.T) {
	if errs := ToValidationErrors(nil); len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
}

func TestQuestionTypeMessage(t *testing.T) {
	expected := "must be a valid question type (categorize, cloze, comprehension)"
	if got := QuestionTypeMessage(); got != expected {
		t.Errorf("Expected '%s', got '%s'", expected, got)
	}
}
