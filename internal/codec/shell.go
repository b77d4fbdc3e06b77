// Package codec converts between a respondent's in-progress answers and the
// positional wire format stored on a Response, and back again for review.
package codec

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/form-service/internal/models"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrSlotOutOfRange  = errors.New("slot index out of range")
)

// Shell is the working answer for one question while a form is being filled.
type Shell interface {
	QuestionID() string
	Kind() models.QuestionType
	Serialize() models.Answer
}

// NewShell returns an empty shell shaped for the question's variant.
func NewShell(q models.Question) (Shell, error) {
	switch body := q.Body.(type) {
	case *models.CategorizeBody:
		return newCategorizeShell(q.ID, body), nil
	case *models.ClozeBody:
		return newIndexedShell(q.ID, models.Cloze, body.Slots()), nil
	case *models.ComprehensionBody:
		return newIndexedShell(q.ID, models.Comprehension, len(body.Questions)), nil
	default:
		return nil, fmt.Errorf("%w: %T", models.ErrUnsupportedQuestionType, q.Body)
	}
}

// NewShells builds one shell per question, in form order.
func NewShells(form *models.Form) ([]Shell, error) {
	shells := make([]Shell, 0, len(form.Questions))
	for i, q := range form.Questions {
		s, err := NewShell(q)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		shells = append(shells, s)
	}
	return shells, nil
}

// Entries serializes every shell into the entries of a submission.
func Entries(shells []Shell) []models.AnswerEntry {
	entries := make([]models.AnswerEntry, 0, len(shells))
	for _, s := range shells {
		entries = append(entries, models.AnswerEntry{
			QuestionID: s.QuestionID(),
			Type:       s.Kind(),
			Answer:     s.Serialize(),
		})
	}
	return entries
}

// ===== CATEGORIZE =====

type CategorizeShell struct {
	questionID string
	order      []string
	selections map[string][]string
}

func newCategorizeShell(questionID string, body *models.CategorizeBody) *CategorizeShell {
	s := &CategorizeShell{
		questionID: questionID,
		order:      body.CategoryNames(),
		selections: make(map[string][]string),
	}
	for _, name := range s.order {
		s.selections[name] = []string{}
	}
	return s
}

func (s *CategorizeShell) QuestionID() string        { return s.questionID }
func (s *CategorizeShell) Kind() models.QuestionType { return models.Categorize }

// Assign moves item into category. The item is first removed from every
// category; re-assigning to the same category does not duplicate it.
func (s *CategorizeShell) Assign(item, category string) error {
	if _, ok := s.selections[category]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	for name, items := range s.selections {
		if name == category {
			continue
		}
		s.selections[name] = without(items, item)
	}

	if !contains(s.selections[category], item) {
		s.selections[category] = append(s.selections[category], item)
	}
	return nil
}

// Items returns the current selection for a category.
func (s *CategorizeShell) Items(category string) []string {
	return append([]string(nil), s.selections[category]...)
}

func (s *CategorizeShell) Serialize() models.Answer {
	out := make(models.CategorizeAnswer, len(s.selections))
	for name, items := range s.selections {
		out[name] = append([]string{}, items...)
	}
	return out
}

// ===== CLOZE / COMPREHENSION =====

// IndexedShell backs both cloze (slot -> text) and comprehension
// (sub-question -> selected option). Both serialize positionally.
type IndexedShell struct {
	questionID string
	kind       models.QuestionType
	size       int
	values     map[int]string
}

func newIndexedShell(questionID string, kind models.QuestionType, size int) *IndexedShell {
	s := &IndexedShell{
		questionID: questionID,
		kind:       kind,
		size:       size,
		values:     make(map[int]string, size),
	}
	for i := 0; i < size; i++ {
		s.values[i] = ""
	}
	return s
}

func (s *IndexedShell) QuestionID() string        { return s.questionID }
func (s *IndexedShell) Kind() models.QuestionType { return s.kind }

// Len is the number of addressable positions.
func (s *IndexedShell) Len() int { return s.size }

// Fill sets a cloze slot. Correct answers are not consulted.
func (s *IndexedShell) Fill(i int, value string) error {
	return s.set(i, value)
}

// Select sets the chosen option for a sub-question. Option membership is not
// checked here.
func (s *IndexedShell) Select(i int, option string) error {
	return s.set(i, option)
}

func (s *IndexedShell) set(i int, value string) error {
	if i < 0 || i >= s.size {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrSlotOutOfRange, i, s.size)
	}
	s.values[i] = value
	return nil
}

// Value returns the current value at i.
func (s *IndexedShell) Value(i int) string {
	return s.values[i]
}

func (s *IndexedShell) Serialize() models.Answer {
	out := positional(s.values, s.size)
	if s.kind == models.Comprehension {
		return models.ComprehensionAnswer(out)
	}
	return models.ClozeAnswer(out)
}

// positional projects an index-keyed map onto a slice covering 0..max(size-1,
// highest key). Absent indexes become "".
func positional(values map[int]string, size int) []string {
	n := size
	for i := range values {
		if i+1 > n {
			n = i + 1
		}
	}
	out := make([]string, n)
	for i, v := range values {
		if i >= 0 {
			out[i] = v
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func without(list []string, v string) []string {
	out := list[:0:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
