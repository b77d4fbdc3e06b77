package codec

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/form-service/internal/models"
)

var (
	ErrUnknownItem    = errors.New("item is not offered by the question")
	ErrDuplicateItem  = errors.New("item assigned to more than one category")
	ErrTooManyAnswers = errors.New("more answers than the question has positions")
)

// ValidateAnswer checks that an answer fits the shape of its question. It does
// not grade: correct answers stored on the question are never consulted.
func ValidateAnswer(q models.Question, answer models.Answer) error {
	if answer == nil {
		return nil
	}
	if answer.Kind() != q.Type() {
		return fmt.Errorf("%w: answer is %q, question is %q", models.ErrAnswerTypeMismatch, answer.Kind(), q.Type())
	}

	switch body := q.Body.(type) {
	case *models.CategorizeBody:
		return validateCategorize(body, answer.(models.CategorizeAnswer))
	case *models.ClozeBody:
		if n := len(answer.(models.ClozeAnswer)); n > body.Slots() {
			return fmt.Errorf("%w: %d values for %d blanks", ErrTooManyAnswers, n, body.Slots())
		}
	case *models.ComprehensionBody:
		if n := len(answer.(models.ComprehensionAnswer)); n > len(body.Questions) {
			return fmt.Errorf("%w: %d selections for %d questions", ErrTooManyAnswers, n, len(body.Questions))
		}
	}
	return nil
}

func validateCategorize(body *models.CategorizeBody, answer models.CategorizeAnswer) error {
	pool := make(map[string]struct{})
	for _, item := range body.ItemPool() {
		pool[item] = struct{}{}
	}

	placed := make(map[string]string)
	for category, items := range answer {
		if !body.HasCategory(category) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		for _, item := range items {
			if _, ok := pool[item]; !ok {
				return fmt.Errorf("%w: %q", ErrUnknownItem, item)
			}
			if prev, ok := placed[item]; ok {
				if prev == category {
					return fmt.Errorf("%w: %q listed twice in %q", ErrDuplicateItem, item, category)
				}
				return fmt.Errorf("%w: %q in %q and %q", ErrDuplicateItem, item, prev, category)
			}
			placed[item] = category
		}
	}
	return nil
}
