package models

import (
	"time"

	"gorm.io/datatypes"
)

// Response is one immutable submission against a form. FormID is a plain
// reference; the form does not own its responses.
type Response struct {
	ID          string                           `json:"id" gorm:"primaryKey;size:36"`
	FormID      string                           `json:"formId" gorm:"not null;size:36;index"`
	Responses   datatypes.JSONSlice[AnswerEntry] `json:"responses"`
	SubmittedAt time.Time                        `json:"submittedAt" gorm:"index"`
}

func (Response) TableName() string {
	return "responses"
}

// EntryFor returns the entry answering questionID, if any.
func (r *Response) EntryFor(questionID string) (AnswerEntry, bool) {
	for _, e := range r.Responses {
		if e.QuestionID == questionID {
			return e, true
		}
	}
	return AnswerEntry{}, false
}
