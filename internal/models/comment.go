package models

import "time"

// Comment represents a comment on a gallery item
type Comment struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	ItemType  ContentType `json:"item_type" gorm:"size:20;index:idx_comment_item"`
	ItemID    string      `json:"item_id" gorm:"size:24;index:idx_comment_item"` // MongoDB ObjectID as hex
	UserID    string      `json:"user_id" gorm:"size:128;index"`
	Content   string      `json:"content" gorm:"size:500"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
