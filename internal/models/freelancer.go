package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Freelancer is the work profile attached 1:1 to a freelancer-role User.
// Project ids and application ids are tracked as JSON lists, mirroring the
// document shape the rest of the system reads back verbatim.
type Freelancer struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Skills      datatypes.JSONSlice[string] `json:"skills"`
	Description string                      `gorm:"type:text" json:"description"`

	CurrentProjects   datatypes.JSONSlice[string] `json:"currentProjects"`
	CompletedProjects datatypes.JSONSlice[string] `json:"completedProjects"`
	Applications      datatypes.JSONSlice[string] `json:"applications"`

	// Funds only ever grows: credited with a project's budget on submission approval.
	Funds int `gorm:"default:0" json:"funds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (f *Freelancer) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
