// Package models defines the client-side data model: users, characters and
// history items, plus partial-update carriers used by the storage backend.
package models

import "time"

// DefaultAvatar is the sentinel used when a user has not selected any of
// their owned avatars yet.
const DefaultAvatar = "/static/default-avatar.svg"

// User is the identity record. ID is the partition key for all owned data.
// CurrentAvatar is always an element of Avatars or the DefaultAvatar
// sentinel.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	Points        int       `json:"points"`
	Avatars       []string  `json:"avatars"`
	CurrentAvatar string    `json:"currentAvatar"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OwnsAvatar reports whether url is in the user's owned set.
func (u *User) OwnsAvatar(url string) bool {
	for _, a := range u.Avatars {
		if a == url {
			return true
		}
	}
	return false
}

// Character is an outfit character. ID and CreatedAt are assigned by the
// backend on creation; UserID is immutable after creation.
type Character struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	HairStyle string    `json:"hairStyle"`
	HairColor string    `json:"hairColor"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}

// NewCharacter carries the caller-supplied fields for character creation.
// The backend assigns the id and timestamp and substitutes a placeholder
// image when ImageURL is empty.
type NewCharacter struct {
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	HairStyle string `json:"hairStyle"`
	HairColor string `json:"hairColor"`
	UserID    string `json:"userId"`
}

// UserUpdate is a partial update for a user: nil fields are left unchanged.
type UserUpdate struct {
	Username      *string   `json:"username,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Points        *int      `json:"points,omitempty"`
	Avatars       *[]string `json:"avatars,omitempty"`
	CurrentAvatar *string   `json:"currentAvatar,omitempty"`
}

// Apply overlays non-nil fields onto u.
func (up UserUpdate) Apply(u *User) {
	if up.Username != nil {
		u.Username = *up.Username
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Points != nil {
		u.Points = *up.Points
	}
	if up.Avatars != nil {
		u.Avatars = append([]string(nil), (*up.Avatars)...)
	}
	if up.CurrentAvatar != nil {
		u.CurrentAvatar = *up.CurrentAvatar
	}
}

// CharacterUpdate is a partial update for a character. UserID is not
// updatable: the owning partition is fixed at creation.
type CharacterUpdate struct {
	Name      *string `json:"name,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	HairStyle *string `json:"hairStyle,omitempty"`
	HairColor *string `json:"hairColor,omitempty"`
}

// Apply overlays non-nil fields onto c.
func (up CharacterUpdate) Apply(c *Character) {
	if up.Name != nil {
		c.Name = *up.Name
	}
	if up.ImageURL != nil {
		c.ImageURL = *up.ImageURL
	}
	if up.HairStyle != nil {
		c.HairStyle = *up.HairStyle
	}
	if up.HairColor != nil {
		c.HairColor = *up.HairColor
	}
}

// HistoryItem is one entry of the per-user generation ledger. Immutable once
// created except for ledger-level eviction.
type HistoryItem struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Prompt        string         `json:"prompt"`
	ImageURL      string         `json:"imageUrl"`
	CharacterName string         `json:"characterName,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// SessionUser is the record the session collaborator holds for the logged-in
// user. It is authoritative for the store's user projection at init time.
type SessionUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}
