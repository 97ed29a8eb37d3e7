package handlers

import (
	"gorm.io/gorm"
)

// Handler combines all handler types
type Handler struct {
	Auth *AuthHandler
	User *UserHandler
	Post *PostHandler
	Vote *VoteHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		Auth: NewAuthHandler(db),
		User: NewUserHandler(db),
		Post: NewPostHandler(db),
		Vote: NewVoteHandler(db),
	}
}
