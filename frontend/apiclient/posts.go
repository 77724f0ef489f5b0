package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/utils"
)

// Blog posts live on a separate origin. The bearer token is never sent there.

func (c *APIClient) GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	err := c.request(ctx, call{method: http.MethodGet, base: c.BlogBaseURL, path: "/posts"}, &posts)
	return posts, err
}

func (c *APIClient) CreateBlogPost(ctx context.Context, post api.BlogPostRequest) (domain.BlogPost, error) {
	if err := utils.Validate(post); err != nil {
		return domain.BlogPost{}, err
	}
	var created domain.BlogPost
	err := c.request(ctx, call{method: http.MethodPost, base: c.BlogBaseURL, path: "/posts", body: post, nestedKey: "post"}, &created)
	return created, err
}

func (c *APIClient) UpdateBlogPost(ctx context.Context, id domain.PostId, post api.BlogPostRequest) (domain.BlogPost, error) {
	if err := utils.Validate(post); err != nil {
		return domain.BlogPost{}, err
	}
	var updated domain.BlogPost
	err := c.request(ctx, call{
		method:    http.MethodPut,
		base:      c.BlogBaseURL,
		path:      "/posts/" + url.PathEscape(id),
		body:      post,
		nestedKey: "post",
	}, &updated)
	return updated, err
}

func (c *APIClient) DeleteBlogPost(ctx context.Context, id domain.PostId) (string, error) {
	var res api.MessageResponse
	err := c.request(ctx, call{method: http.MethodDelete, base: c.BlogBaseURL, path: "/posts/" + url.PathEscape(id)}, &res)
	return res.Message, err
}
