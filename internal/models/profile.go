package models

import "time"

// Profile is the public profile of a Firebase identity, one row per UID
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;size:128"` // Firebase UID
	Username  string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email     string    `json:"email,omitempty" gorm:"size:255"`
	Bio       string    `json:"bio" gorm:"size:300"`
	AvatarURL string    `json:"avatar_url"`
	Website   string    `json:"website"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileView is a profile with follow counters and the viewer's follow state
type ProfileView struct {
	Profile
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

// UpdateProfileRequest defines the request body for updating the caller's profile
type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty" validate:"omitempty,min=2,max=30,alphanum"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
}
