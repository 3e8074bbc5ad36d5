package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// Application is a freelancer's bid on a project. Project and freelancer data
// are snapshotted at bid time so the record stays readable after either side
// changes. Once Accepted or Rejected it is never mutated again.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;index" json:"projectId"`

	ClientID    uuid.UUID `gorm:"type:uuid;index" json:"clientId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`

	FreelancerID     uuid.UUID                   `gorm:"type:uuid;index" json:"freelancerId"`
	FreelancerName   string                      `json:"freelancerName"`
	FreelancerEmail  string                      `json:"freelancerEmail"`
	FreelancerSkills datatypes.JSONSlice[string] `json:"freelancerSkills"`

	Title          string                      `json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	Budget         int                         `json:"budget"`
	RequiredSkills datatypes.JSONSlice[string] `json:"requiredSkills"`

	Proposal      string `gorm:"type:text" json:"proposal"`
	BidAmount     int    `json:"bidAmount"`
	EstimatedTime int    `json:"estimatedTime"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'Pending';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ApplicationPending
	}
	return
}
