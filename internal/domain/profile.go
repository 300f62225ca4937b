package domain

import "time"

// Profile is the public account-level information of a GitHub user.
type Profile struct {
	Login       string  `json:"login"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio,omitempty"`
	Name        *string `json:"name,omitempty"`
	HTMLURL     string  `json:"html_url,omitempty"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}

// Repository is a single repository listed under a user's account.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	UpdatedAt   time.Time `json:"updated_at"`
	Language    *string   `json:"language,omitempty"`
	Stars       int       `json:"stars"`
}
