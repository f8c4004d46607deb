package domain

import (
	"context"
	"time"
)

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"` // data:<mime>;base64,... 或历史遗留的外链
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PostPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
}

func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil
}

type PostFilter struct {
	Title string
}

var PostSortFields = []string{"title", "description", "createdAt", "updatedAt"}

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, id string, p PostPatch) (*Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PostFilter, q ListQuery) ([]Post, int64, error)
}

// PostPage 分页列表响应
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
