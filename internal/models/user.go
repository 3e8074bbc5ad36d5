package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Usertype string

const (
	UsertypeClient     Usertype = "client"
	UsertypeFreelancer Usertype = "freelancer"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Usertype Usertype  `gorm:"type:varchar(20);not null;index" json:"usertype"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
