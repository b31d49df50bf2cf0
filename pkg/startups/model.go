package startups

import "time"

// Author is referenced by a startup and dereferenced in query projections.
// The list projection fills Name, the detail projection fills Username.
type Author struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Image    string `json:"image,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type Slug struct {
	Current string `json:"current"`
}

type Startup struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Slug        Slug      `json:"slug"`
	CreatedAt   time.Time `json:"_createdAt"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Pitch       string    `json:"pitch,omitempty"`
	Views       int64     `json:"views"`
	Author      *Author   `json:"author"`
}

type StartupList struct {
	Items []Startup `json:"items"`
	Total int64     `json:"total"`
}
