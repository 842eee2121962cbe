package models

import "time"

// User is a presence record: created once at login, never updated,
// never expired. Display names are not unique.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Country  string    `json:"country"`
	Flag     string    `json:"flag"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session is the identity a login hands back to the client. It is
// held in Redis for the token's lifetime and cleared on logout.
type Session struct {
	ID      string `json:"-"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	Country string `json:"country"`
	Flag    string `json:"flag"`
}
