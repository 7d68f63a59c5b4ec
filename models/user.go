package models

import "time"

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	ProfilePic string    `json:"profilePic"`
	Online     bool      `json:"online"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UserSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic"`
	Online     bool      `json:"online"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		Online:     u.Online,
		CreatedAt:  u.CreatedAt,
	}
}
