package domain

import "time"

// BlogPost lives in the external blog service; ids are opaque strings there.
type BlogPost struct {
	Id        PostId    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
