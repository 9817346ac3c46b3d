package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Name     string `gorm:"size:100;not null" json:"name" bson:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email" bson:"email"` // always lower-cased
	Password string `gorm:"not null" json:"-" bson:"password"`
	Image    string `json:"image" bson:"image"`
	Bio      string `json:"bio" bson:"bio"`
	Location string `json:"location" bson:"location"`

	JoinedAt  time.Time `json:"joinedAt" bson:"joinedAt"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Author is the public subset of a User joined into content responses.
type Author struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Image string `json:"image" bson:"image"`
}

func (u *User) Author() Author {
	return Author{ID: u.ID, Name: u.Name, Image: u.Image}
}

// NormalizeEmail makes email comparison case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Image    *string `json:"image"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
