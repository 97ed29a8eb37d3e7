package models

import "time"

type Post struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Published bool      `gorm:"not null" json:"published"`
	UserID    int       `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
}

// PostFields are the mutable fields shared by the create and update
// request bodies. Published defaults to true when omitted.
type PostFields struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published *bool  `json:"published"`
}

type CreatePostRequest struct {
	PostFields
}

type UpdatePostRequest struct {
	PostFields
}

// PostOut pairs a post with its aggregated vote count.
type PostOut struct {
	Post  Post  `json:"post"`
	Votes int64 `json:"votes"`
}
