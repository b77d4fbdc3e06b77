package codec

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SAP-F-2025/form-service/internal/models"
)

const (
	// NotAnswered is shown for a question or sub-question with no stored value.
	NotAnswered = "not answered"
	// EmptyBlank is shown in place of a cloze gap with no stored value.
	EmptyBlank = "___"
)

type ReviewedResponse struct {
	ResponseID  string           `json:"responseId"`
	FormID      string           `json:"formId"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Answers     []ReviewedAnswer `json:"answers"`
	Orphans     []OrphanedAnswer `json:"orphans,omitempty"`
}

// ReviewedAnswer is one form question rendered against its stored answer.
// Exactly one of Categories, Cloze or Comprehension is set when Answered.
type ReviewedAnswer struct {
	QuestionID    string              `json:"questionId"`
	Title         string              `json:"title"`
	Type          models.QuestionType `json:"type"`
	Answered      bool                `json:"answered"`
	Categories    []CategoryView      `json:"categories,omitempty"`
	Cloze         *ClozeView          `json:"cloze,omitempty"`
	Comprehension []ComprehensionView `json:"comprehension,omitempty"`
}

type CategoryView struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ClozeView holds one entry in Gaps and Filled per gap. Filled is false
// where Gaps shows the EmptyBlank placeholder.
type ClozeView struct {
	Segments []string `json:"segments"`
	Gaps     []string `json:"gaps"`
	Filled   []bool   `json:"filled"`
	Text     string   `json:"text"`
}

type ComprehensionView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Answered bool   `json:"answered"`
}

// OrphanedAnswer is a stored entry that no longer lines up with the form.
type OrphanedAnswer struct {
	QuestionID string `json:"questionId"`
	Reason     string `json:"reason"`
}

// OrphanedReferenceError describes why an entry was skipped during review.
type OrphanedReferenceError struct {
	ResponseID string
	QuestionID string
	Reason     string
}

func (e *OrphanedReferenceError) Error() string {
	return fmt.Sprintf("response %s: answer for question %s skipped: %s", e.ResponseID, e.QuestionID, e.Reason)
}

// Text renders a reviewed answer as a single line, for exports.
func (a ReviewedAnswer) Text() string {
	if !a.Answered {
		return NotAnswered
	}
	switch a.Type {
	case models.Categorize:
		parts := make([]string, 0, len(a.Categories))
		for _, c := range a.Categories {
			parts = append(parts, fmt.Sprintf("%s: %s", c.Name, strings.Join(c.Items, ", ")))
		}
		return strings.Join(parts, "; ")
	case models.Cloze:
		return a.Cloze.Text
	case models.Comprehension:
		parts := make([]string, 0, len(a.Comprehension))
		for i, c := range a.Comprehension {
			parts = append(parts, fmt.Sprintf("%d. %s", i+1, c.Answer))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// Review re-associates every stored entry with its question by ID and renders
// it positionally. Entries that cannot be matched are reported as orphans;
// review never fails.
func Review(form *models.Form, resp *models.Response) ReviewedResponse {
	out := ReviewedResponse{
		ResponseID:  resp.ID,
		FormID:      resp.FormID,
		SubmittedAt: resp.SubmittedAt,
		Answers:     make([]ReviewedAnswer, 0, len(form.Questions)),
	}

	for _, err := range Orphans(form, resp) {
		out.Orphans = append(out.Orphans, OrphanedAnswer{QuestionID: err.QuestionID, Reason: err.Reason})
	}

	for _, q := range form.Questions {
		ra := ReviewedAnswer{QuestionID: q.ID, Title: q.Title, Type: q.Type()}

		entry, ok := resp.EntryFor(q.ID)
		if ok && entry.Bind(q.Type()) == nil {
			ra.Answered = true
			renderAnswer(&ra, q, entry.Answer)
		}
		out.Answers = append(out.Answers, ra)
	}
	return out
}

// ReviewAll reviews every response against the same form.
func ReviewAll(form *models.Form, responses []*models.Response) []ReviewedResponse {
	out := make([]ReviewedResponse, 0, len(responses))
	for _, r := range responses {
		out = append(out, Review(form, r))
	}
	return out
}

// Orphans lists the entries of resp that Review will skip.
func Orphans(form *models.Form, resp *models.Response) []*OrphanedReferenceError {
	var out []*OrphanedReferenceError
	for _, entry := range resp.Responses {
		q, ok := form.QuestionByID(entry.QuestionID)
		if !ok {
			out = append(out, &OrphanedReferenceError{
				ResponseID: resp.ID,
				QuestionID: entry.QuestionID,
				Reason:     "question no longer exists in form",
			})
			continue
		}
		if err := entry.Bind(q.Type()); err != nil {
			out = append(out, &OrphanedReferenceError{
				ResponseID: resp.ID,
				QuestionID: entry.QuestionID,
				Reason:     err.Error(),
			})
		}
	}
	return out
}

func renderAnswer(ra *ReviewedAnswer, q models.Question, answer models.Answer) {
	switch body := q.Body.(type) {
	case *models.CategorizeBody:
		ra.Categories = renderCategories(body, answer.(models.CategorizeAnswer))
	case *models.ClozeBody:
		ra.Cloze = RenderCloze(body, answer.(models.ClozeAnswer))
	case *models.ComprehensionBody:
		ra.Comprehension = renderComprehension(body, answer.(models.ComprehensionAnswer))
	}
}

// renderCategories lists the answer's categories in the question's authored
// order, followed by any other keys in name order.
func renderCategories(body *models.CategorizeBody, answer models.CategorizeAnswer) []CategoryView {
	views := make([]CategoryView, 0, len(answer))
	seen := make(map[string]bool, len(answer))
	for _, name := range body.CategoryNames() {
		items, ok := answer[name]
		if !ok {
			continue
		}
		seen[name] = true
		views = append(views, CategoryView{Name: name, Items: append([]string{}, items...)})
	}

	var extra []string
	for name := range answer {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		views = append(views, CategoryView{Name: name, Items: append([]string{}, answer[name]...)})
	}
	return views
}

// RenderCloze zips the passage gaps with stored values by position.
func RenderCloze(body *models.ClozeBody, answer models.ClozeAnswer) *ClozeView {
	segments := body.Segments()
	gaps := make([]string, len(segments)-1)
	filled := make([]bool, len(segments)-1)

	var sb strings.Builder
	for i, seg := range segments {
		sb.WriteString(seg)
		if i == len(segments)-1 {
			break
		}
		gap := EmptyBlank
		if i < len(answer) && answer[i] != "" {
			gap = answer[i]
			filled[i] = true
		}
		gaps[i] = gap
		sb.WriteString(gap)
	}

	return &ClozeView{Segments: segments, Gaps: gaps, Filled: filled, Text: sb.String()}
}

func renderComprehension(body *models.ComprehensionBody, answer models.ComprehensionAnswer) []ComprehensionView {
	views := make([]ComprehensionView, 0, len(body.Questions))
	for i, sq := range body.Questions {
		v := ComprehensionView{Question: sq.Question, Answer: NotAnswered}
		if i < len(answer) && answer[i] != "" {
			v.Answer = answer[i]
			v.Answered = true
		}
		views = append(views, v)
	}
	return views
}

// Values recovers the visible values from a reviewed answer in the same
// shape Serialize produces, so filled shells round-trip through review.
func (a ReviewedAnswer) Values() models.Answer {
	switch a.Type {
	case models.Categorize:
		out := models.CategorizeAnswer{}
		for _, c := range a.Categories {
			out[c.Name] = append([]string{}, c.Items...)
		}
		return out
	case models.Cloze:
		if a.Cloze == nil {
			return models.ClozeAnswer{}
		}
		out := make(models.ClozeAnswer, len(a.Cloze.Gaps))
		for i, g := range a.Cloze.Gaps {
			if i < len(a.Cloze.Filled) && a.Cloze.Filled[i] {
				out[i] = g
			}
		}
		return out
	case models.Comprehension:
		out := make(models.ComprehensionAnswer, len(a.Comprehension))
		for i, c := range a.Comprehension {
			if c.Answered {
				out[i] = c.Answer
			}
		}
		return out
	}
	return nil
}
