package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avdeenko/bookclub/models"
)

// PostListOptions are the query parameters of the post list endpoint.
// Zero values are omitted from the request.
type PostListOptions struct {
	Author   string
	Search   string
	Ordering string
	Page     int
	PageSize int
}

func (o PostListOptions) query() map[string]string {
	params := map[string]string{}
	if o.Author != "" {
		params["author"] = o.Author
	}
	if o.Search != "" {
		params["search"] = o.Search
	}
	if o.Ordering != "" {
		params["ordering"] = o.Ordering
	}
	if o.Page > 0 {
		params["page"] = strconv.Itoa(o.Page)
	}
	if o.PageSize > 0 {
		params["page_size"] = strconv.Itoa(o.PageSize)
	}
	return params
}

func (c *Client) ListPosts(ctx context.Context, opts PostListOptions) (models.Page[models.Post], error) {
	var page models.Page[models.Post]

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(opts.query()).
		SetResult(&page).
		Get("/api/posts")
	if err != nil {
		return models.Page[models.Post]{}, fmt.Errorf("list posts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page[models.Post]{}, err
	}

	return page, nil
}

func (c *Client) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var created models.Post

	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(post).
		SetResult(&created).
		Post("/api/posts")
	if err != nil {
		return models.Post{}, fmt.Errorf("create post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return created, nil
}

// GetPost returns the post detail shape with embedded comments.
func (c *Client) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	var post models.Post

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&post).
		Get(fmt.Sprintf("/api/posts/%d", postID))
	if err != nil {
		return models.Post{}, fmt.Errorf("get post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return post, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID int64, update models.PostUpdate) (models.Post, error) {
	var updated models.Post

	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&updated).
		Patch(fmt.Sprintf("/api/posts/%d", postID))
	if err != nil {
		return models.Post{}, fmt.Errorf("update post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return updated, nil
}

func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	resp, err := c.authorized().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/posts/%d", postID))
	if err != nil {
		return fmt.Errorf("delete post request: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *Client) CreateComment(ctx context.Context, postID int64, comment models.Comment) (models.Comment, error) {
	var created models.Comment

	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(comment).
		SetResult(&created).
		Post(fmt.Sprintf("/api/posts/%d/comments", postID))
	if err != nil {
		return models.Comment{}, fmt.Errorf("create comment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Comment{}, err
	}

	return created, nil
}

// Feed returns the posts authored by users the caller follows, newest first.
func (c *Client) Feed(ctx context.Context, page, pageSize int) (models.Page[models.Post], error) {
	var feed models.Page[models.Post]

	req := c.authorized().SetContext(ctx).SetResult(&feed)
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		req.SetQueryParam("page_size", strconv.Itoa(pageSize))
	}

	resp, err := req.Get("/api/feed")
	if err != nil {
		return models.Page[models.Post]{}, fmt.Errorf("feed request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page[models.Post]{}, err
	}

	return feed, nil
}

// Follow subscribes the caller to userID's posts. Idempotent.
func (c *Client) Follow(ctx context.Context, userID int64) error {
	resp, err := c.authorized().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/follow/%d", userID))
	if err != nil {
		return fmt.Errorf("follow request: %w", err)
	}

	return mapHTTPError(resp)
}

// Unfollow removes the caller's subscription to userID's posts. Idempotent.
func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	resp, err := c.authorized().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/unfollow/%d", userID))
	if err != nil {
		return fmt.Errorf("unfollow request: %w", err)
	}

	return mapHTTPError(resp)
}
