package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	AnonymousReviewer = "Anonim"
	MinCommentLength  = 10
	MaxCommentLength  = 500
)

type Review struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" dynamodbav:"id" json:"id"`
	PhoneID      int64     `gorm:"not null;index" dynamodbav:"phone_id" json:"phone_id"`
	ReviewerName string    `gorm:"size:100;not null;default:Anonim" dynamodbav:"reviewer_name" json:"reviewer_name"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" dynamodbav:"rating" json:"rating"`
	Comment      string    `gorm:"type:text;not null" dynamodbav:"comment" json:"comment"`
	CreatedAt    time.Time `gorm:"autoCreateTime" dynamodbav:"created_at" json:"created_at"`
}

// ReviewWithPhone is a review row in the admin list.
type ReviewWithPhone struct {
	Review
	PhoneName string `gorm:"column:phone_name" json:"phone_name"`
	PhoneSlug string `gorm:"column:phone_slug" json:"phone_slug"`
}

func (r Review) GetID() int64      { return r.ID }
func (r *Review) SetID(id int64)   { r.ID = id }
func (r Review) TableName() string { return "reviews" }

func (r *Review) SetCreatedAt(t time.Time) { r.CreatedAt = t }
func (r *Review) SetUpdatedAt(time.Time)   {}
func (r Review) GetCreatedAt() time.Time   { return r.CreatedAt }

type ReviewInput struct {
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

var reviewMessages = map[string]string{
	"rating.required": "Pilih rating terlebih dahulu",
	"rating.min":      "Rating harus antara 1 dan 5",
	"rating.max":      "Rating harus antara 1 dan 5",
}

// Normalize trims the text fields and fills in the anonymous reviewer name.
func (in *ReviewInput) Normalize() {
	in.ReviewerName = strings.TrimSpace(in.ReviewerName)
	if in.ReviewerName == "" {
		in.ReviewerName = AnonymousReviewer
	}
	in.Comment = strings.TrimSpace(in.Comment)
}

// Validate expects a normalized input.
func (in ReviewInput) Validate() error {
	if err := validateStruct(in, reviewMessages); err != nil {
		return err
	}
	switch n := utf8.RuneCountInString(in.Comment); {
	case n < MinCommentLength:
		return &ValidationError{Field: "comment", Message: "Komentar minimal 10 karakter"}
	case n > MaxCommentLength:
		return &ValidationError{Field: "comment", Message: "Komentar maksimal 500 karakter"}
	}
	return nil
}

func (in ReviewInput) ToReview(phoneID int64) Review {
	return Review{
		PhoneID:      phoneID,
		ReviewerName: in.ReviewerName,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
}
