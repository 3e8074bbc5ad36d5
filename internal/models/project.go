package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectAvailable ProjectStatus = "Available"
	ProjectAssigned  ProjectStatus = "Assigned"
	ProjectCompleted ProjectStatus = "Completed"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;index" json:"clientId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`

	Title       string                      `json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Budget      int                         `json:"budget"`
	Skills      datatypes.JSONSlice[string] `json:"skills"`

	// Bids holds freelancer user ids in bid order; BidAmounts is index-aligned.
	Bids       datatypes.JSONSlice[string] `json:"bids"`
	BidAmounts datatypes.JSONSlice[int]    `json:"bidAmounts"`

	PostedDate string        `json:"postedDate"`
	Status     ProjectStatus `gorm:"type:varchar(20);default:'Available';index" json:"status"`
	Deadline   string        `json:"deadline"`

	// FreelancerID is uuid.Nil until the project is assigned.
	FreelancerID   uuid.UUID `gorm:"type:uuid;index" json:"freelancerId"`
	FreelancerName string    `json:"freelancerName"`

	Submission            bool   `gorm:"default:false" json:"submission"`
	SubmissionAccepted    bool   `gorm:"default:false" json:"submissionAccepted"`
	ProjectLink           string `gorm:"type:text" json:"projectLink"`
	ManualLink            string `gorm:"type:text" json:"manualLink"`
	SubmissionDescription string `gorm:"type:text" json:"submissionDescription"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectAvailable
	}
	return
}
