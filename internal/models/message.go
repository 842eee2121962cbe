package models

import "time"

type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindImage MessageKind = "image"
	MessageKindVideo MessageKind = "video"
	MessageKindAudio MessageKind = "audio"
)

// Message carries either textual content or a file URL, discriminated
// by Kind. A row with neither is not constructible through the write
// paths but readers tolerate it.
type Message struct {
	ID        string      `json:"id"`
	Author    string      `json:"author"`
	Country   string      `json:"country"`
	Kind      MessageKind `json:"kind"`
	Content   string      `json:"content,omitempty"`
	FileURL   string      `json:"fileUrl,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CountryInfo is derived per session from the geo resolver and only
// ever embedded into users and messages at creation time.
type CountryInfo struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Flag        string `json:"flag"`
}
