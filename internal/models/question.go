package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type QuestionType string

const (
	Categorize    QuestionType = "categorize"
	Cloze         QuestionType = "cloze"
	Comprehension QuestionType = "comprehension"
)

// BlankMarker delimits a fillable slot inside a cloze passage.
const BlankMarker = "[blank]"

var ErrUnsupportedQuestionType = errors.New("unsupported question type")

// QuestionTypes lists every supported variant in display order.
func QuestionTypes() []QuestionType {
	return []QuestionType{Categorize, Cloze, Comprehension}
}

func (t QuestionType) Valid() bool {
	switch t {
	case Categorize, Cloze, Comprehension:
		return true
	}
	return false
}

// QuestionBody is the variant-specific payload of a Question.
type QuestionBody interface {
	Kind() QuestionType
}

// Question is a tagged union: a shared header plus exactly one variant body.
// On the wire the header and body fields are flattened into one object.
type Question struct {
	ID    string
	Title string
	Image string
	Body  QuestionBody
}

// Type reports the variant tag, derived from the body.
func (q Question) Type() QuestionType {
	if q.Body == nil {
		return ""
	}
	return q.Body.Kind()
}

// NewQuestion builds a question of the given variant with its default shape
// and a freshly generated ID.
func NewQuestion(t QuestionType) (Question, error) {
	body, err := defaultBody(t)
	if err != nil {
		return Question{}, err
	}
	return Question{ID: uuid.NewString(), Body: body}, nil
}

func defaultBody(t QuestionType) (QuestionBody, error) {
	switch t {
	case Categorize:
		return &CategorizeBody{Categories: []Category{
			{Name: "Category 1", Items: []string{}},
			{Name: "Category 2", Items: []string{}},
		}}, nil
	case Cloze:
		return &ClozeBody{Blanks: []Blank{}}, nil
	case Comprehension:
		return &ComprehensionBody{Questions: []SubQuestion{}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, t)
	}
}

// ===== CATEGORIZE =====

type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type CategorizeBody struct {
	Categories []Category `json:"categories"`
}

func (*CategorizeBody) Kind() QuestionType { return Categorize }

// CategoryNames returns the distinct category names. A repeated name keeps
// the position of its last definition.
func (b *CategorizeBody) CategoryNames() []string {
	last := make(map[string]int, len(b.Categories))
	for i, c := range b.Categories {
		last[c.Name] = i
	}
	names := make([]string, 0, len(last))
	for i, c := range b.Categories {
		if last[c.Name] == i {
			names = append(names, c.Name)
		}
	}
	return names
}

// HasCategory reports whether name is one of the category keys.
func (b *CategorizeBody) HasCategory(name string) bool {
	for _, c := range b.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ItemPool returns every distinct item across all categories, in authored order.
func (b *CategorizeBody) ItemPool() []string {
	seen := make(map[string]struct{})
	var pool []string
	for _, c := range b.Categories {
		for _, item := range c.Items {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			pool = append(pool, item)
		}
	}
	return pool
}

// ===== CLOZE =====

type Blank struct {
	Position int    `json:"position"`
	Answer   string `json:"answer"`
}

type ClozeBody struct {
	Passage string  `json:"passage"`
	Blanks  []Blank `json:"blanks"`
}

func (*ClozeBody) Kind() QuestionType { return Cloze }

// Segments splits the passage on the blank marker. There is one gap between
// each pair of consecutive segments.
func (b *ClozeBody) Segments() []string {
	return strings.Split(b.Passage, BlankMarker)
}

// Slots is the number of fillable gaps, independent of len(Blanks).
func (b *ClozeBody) Slots() int {
	return len(b.Segments()) - 1
}

// ===== COMPREHENSION =====

type SubQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type ComprehensionBody struct {
	Passage   string        `json:"comprehensionPassage"`
	Questions []SubQuestion `json:"comprehensionQuestions"`
}

func (*ComprehensionBody) Kind() QuestionType { return Comprehension }

// ===== WIRE FORMAT =====

type questionHeader struct {
	ID    string       `json:"id"`
	Type  QuestionType `json:"type"`
	Title string       `json:"title"`
	Image string       `json:"image"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	hdr := questionHeader{ID: q.ID, Type: q.Type(), Title: q.Title, Image: q.Image}

	switch b := q.Body.(type) {
	case nil:
		return json.Marshal(hdr)
	case *CategorizeBody:
		return json.Marshal(struct {
			questionHeader
			*CategorizeBody
		}{hdr, b})
	case *ClozeBody:
		return json.Marshal(struct {
			questionHeader
			*ClozeBody
		}{hdr, b})
	case *ComprehensionBody:
		return json.Marshal(struct {
			questionHeader
			*ComprehensionBody
		}{hdr, b})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedQuestionType, q.Body)
	}
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var hdr questionHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return err
	}

	var body QuestionBody
	switch hdr.Type {
	case Categorize:
		body = &CategorizeBody{}
	case Cloze:
		body = &ClozeBody{}
	case Comprehension:
		body = &ComprehensionBody{}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedQuestionType, hdr.Type)
	}
	if err := json.Unmarshal(data, body); err != nil {
		return fmt.Errorf("invalid %s question: %w", hdr.Type, err)
	}

	*q = Question{ID: hdr.ID, Title: hdr.Title, Image: hdr.Image, Body: body}
	return nil
}
