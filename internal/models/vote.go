package models

// Vote marks that a user likes a post. A row either exists for the
// (user, post) pair or it does not; there is no other state.
type Vote struct {
	UserID int  `gorm:"primaryKey" json:"user_id"`
	PostID int  `gorm:"primaryKey" json:"post_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

type CastVoteRequest struct {
	PostID int  `json:"post_id" binding:"required"`
	Dir    *int `json:"dir" binding:"required,oneof=0 1"`
}
