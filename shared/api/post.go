package api

// BlogPostRequest is the body of create and update calls to the blog service.
type BlogPostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}
