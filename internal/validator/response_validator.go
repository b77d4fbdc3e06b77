package validator

import (
	"fmt"

	"github.com/SAP-F-2025/form-service/internal/codec"
	"github.com/SAP-F-2025/form-service/internal/models"
)

// ResponseValidator checks a submission against the form it targets.
type ResponseValidator struct{}

func NewResponseValidator() *ResponseValidator {
	return &ResponseValidator{}
}

// ValidateSubmission binds every entry to its question and checks the answer
// shape. Entries are bound in place. Missing entries are allowed.
func (v *ResponseValidator) ValidateSubmission(form *models.Form, entries []models.AnswerEntry) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]int, len(entries))

	for i := range entries {
		entry := &entries[i]
		field := fmt.Sprintf("responses[%d]", i)

		if first, dup := seen[entry.QuestionID]; dup {
			errs.Append(field+".questionId", fmt.Sprintf("duplicates responses[%d].questionId", first), entry.QuestionID)
			continue
		}
		seen[entry.QuestionID] = i

		q, ok := form.QuestionByID(entry.QuestionID)
		if !ok {
			errs.Append(field+".questionId", "does not match any question in the form", entry.QuestionID)
			continue
		}
		if err := entry.Bind(q.Type()); err != nil {
			errs.Append(field+".answer", err.Error(), string(entry.Type))
			continue
		}
		if err := codec.ValidateAnswer(q, entry.Answer); err != nil {
			errs.Append(field+".answer", err.Error(), nil)
		}
	}

	return errs
}
