package models

import (
	"time"

	"gorm.io/datatypes"
)

// Form owns its questions; they are stored embedded in the form row.
type Form struct {
	ID          string                        `json:"id" gorm:"primaryKey;size:36"`
	Title       string                        `json:"title" gorm:"not null;size:200;index" validate:"required,notblank,max=200"`
	Description string                        `json:"description" gorm:"type:text"`
	HeaderImage string                        `json:"headerImage" gorm:"size:500"`
	Questions   datatypes.JSONSlice[Question] `json:"questions"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
}

func (Form) TableName() string {
	return "forms"
}

// QuestionByID finds a question by identifier equality.
func (f *Form) QuestionByID(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
