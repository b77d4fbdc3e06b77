package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrAnswerTypeMismatch = errors.New("answer type does not match question type")

// Answer is the submitted value for one question. Its concrete type mirrors
// the variant of the question it answers.
type Answer interface {
	Kind() QuestionType
}

// CategorizeAnswer maps a category name to the items placed in it.
type CategorizeAnswer map[string][]string

// ClozeAnswer holds one value per blank slot, by position.
type ClozeAnswer []string

// ComprehensionAnswer holds the selected option per sub-question, by position.
type ComprehensionAnswer []string

func (CategorizeAnswer) Kind() QuestionType    { return Categorize }
func (ClozeAnswer) Kind() QuestionType         { return Cloze }
func (ComprehensionAnswer) Kind() QuestionType { return Comprehension }

// DecodeAnswer interprets raw JSON as the answer shape for the given variant.
// A missing or null payload yields an empty answer of that shape.
func DecodeAnswer(t QuestionType, raw json.RawMessage) (Answer, error) {
	empty := len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	switch t {
	case Categorize:
		a := CategorizeAnswer{}
		if !empty {
			if err := json.Unmarshal(raw, &a); err != nil {
				return nil, fmt.Errorf("categorize answer must map category names to item lists: %w", err)
			}
		}
		return a, nil
	case Cloze:
		a := ClozeAnswer{}
		if !empty {
			if err := json.Unmarshal(raw, &a); err != nil {
				return nil, fmt.Errorf("cloze answer must be a list of strings: %w", err)
			}
		}
		return a, nil
	case Comprehension:
		a := ComprehensionAnswer{}
		if !empty {
			if err := json.Unmarshal(raw, &a); err != nil {
				return nil, fmt.Errorf("comprehension answer must be a list of strings: %w", err)
			}
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, t)
	}
}

// AnswerEntry pairs an answer with the question it belongs to.
//
// Submissions may omit "type"; the payload is then kept undecoded until Bind
// is called with the type of the referenced question.
type AnswerEntry struct {
	QuestionID string       `json:"questionId" validate:"required"`
	Type       QuestionType `json:"type" validate:"omitempty,question_type"`
	Answer     Answer       `json:"answer"`

	pending json.RawMessage
}

type answerEntryWire struct {
	QuestionID string          `json:"questionId"`
	Type       QuestionType    `json:"type,omitempty"`
	Answer     json.RawMessage `json:"answer"`
}

// Bound reports whether the entry carries a decoded answer.
func (e *AnswerEntry) Bound() bool {
	return e.Answer != nil
}

// Bind resolves the entry against the type of its question, decoding any
// pending payload. A declared type that disagrees with t is rejected.
func (e *AnswerEntry) Bind(t QuestionType) error {
	if e.Type != "" && e.Type != t {
		return fmt.Errorf("%w: declared %q, question is %q", ErrAnswerTypeMismatch, e.Type, t)
	}
	if e.Answer != nil {
		if e.Answer.Kind() != t {
			return fmt.Errorf("%w: answer is %q, question is %q", ErrAnswerTypeMismatch, e.Answer.Kind(), t)
		}
		e.Type = t
		return nil
	}

	answer, err := DecodeAnswer(t, e.pending)
	if err != nil {
		return err
	}
	e.Type = t
	e.Answer = answer
	e.pending = nil
	return nil
}

func (e AnswerEntry) MarshalJSON() ([]byte, error) {
	w := answerEntryWire{QuestionID: e.QuestionID, Type: e.Type}
	switch {
	case e.Answer != nil:
		raw, err := json.Marshal(e.Answer)
		if err != nil {
			return nil, err
		}
		w.Answer = raw
	case len(e.pending) > 0:
		w.Answer = e.pending
	default:
		w.Answer = json.RawMessage("null")
	}
	return json.Marshal(w)
}

func (e *AnswerEntry) UnmarshalJSON(data []byte) error {
	var w answerEntryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = AnswerEntry{QuestionID: w.QuestionID, Type: w.Type}
	if w.Type == "" {
		e.pending = w.Answer
		return nil
	}

	answer, err := DecodeAnswer(w.Type, w.Answer)
	if err != nil {
		return err
	}
	e.Answer = answer
	return nil
}
