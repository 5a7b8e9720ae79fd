package model

import (
	"net/url"
	"time"
)

const DefaultWeeklyGoal = 5

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Bio            *string   `json:"bio"`
	AvatarURL      *string   `json:"avatar_url"`
	WeeklyGoal     int       `json:"weekly_goal"`
	GithubUsername *string   `json:"github_username"`
	LinkedinURL    *string   `json:"linkedin_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Avatar returns the configured avatar or a generated initials image.
func (u *User) Avatar() string {
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		return *u.AvatarURL
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(u.Name) + "&background=random"
}

// ProfileUpdate holds optional profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	Name           *string
	Bio            *string
	AvatarURL      *string
	WeeklyGoal     *int
	GithubUsername *string
	LinkedinURL    *string
}
