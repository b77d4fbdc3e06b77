package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/form-service/internal/errors"
	"github.com/SAP-F-2025/form-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateTitle checks a form title; whitespace-only titles are rejected.
func (v *QuestionValidator) ValidateTitle(title string) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(title) == "" {
		errs.Append("title", "must not be blank", title)
	}
	return errs
}

// ValidateQuestions validates the questions of one form. IDs must already be
// assigned and must be unique within the form.
func (v *QuestionValidator) ValidateQuestions(questions []models.Question) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]int, len(questions))

	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)

		if q.Body == nil || !q.Type().Valid() {
			errs.Append(field+".type", errors.QuestionTypeMessage(), string(q.Type()))
			continue
		}
		if q.ID == "" {
			errs.Append(field+".id", "is required", q.ID)
		} else if first, dup := seen[q.ID]; dup {
			errs.Append(field+".id", fmt.Sprintf("duplicates questions[%d].id", first), q.ID)
		} else {
			seen[q.ID] = i
		}
		if q.Title == "" {
			errs.Append(field+".title", "is required", q.Title)
		}

		errs = append(errs, v.validateBody(field, q.Body)...)
	}

	return errs
}

// Variant payloads are checked for structure only. Correct answers
// (cloze blanks, comprehension answers) are kept as authored.
func (v *QuestionValidator) validateBody(field string, body models.QuestionBody) ValidationErrors {
	var errs ValidationErrors

	switch b := body.(type) {
	case *models.CategorizeBody:
		for j, c := range b.Categories {
			for k, item := range c.Items {
				if item == "" {
					errs.Append(fmt.Sprintf("%s.categories[%d].items[%d]", field, j, k), "must not be empty", item)
				}
			}
		}
	case *models.ClozeBody:
		for j, blank := range b.Blanks {
			if blank.Position < 0 {
				errs.Append(fmt.Sprintf("%s.blanks[%d].position", field, j), "must not be negative", blank.Position)
			}
		}
	case *models.ComprehensionBody:
		for j, sq := range b.Questions {
			if sq.Question == "" {
				errs.Append(fmt.Sprintf("%s.comprehensionQuestions[%d].question", field, j), "is required", sq.Question)
			}
		}
	}

	return errs
}
