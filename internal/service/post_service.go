package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"go-gin-contact-board/internal/core/cache"
	"go-gin-contact-board/internal/domain"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

type PostInput struct {
	Title       string
	Description string
	Image       *Upload
}

// PostUpdate nil 表示不修改；Image 为空文件时忽略
type PostUpdate struct {
	Title       *string
	Description *string
	Image       *Upload
}

type PostService struct {
	repo   domain.PostRepository
	images *ImageIngestor
	paging Paging
	opts   options
}

func NewPostService(repo domain.PostRepository, images *ImageIngestor, paging Paging, opts ...Option) *PostService {
	if images == nil {
		images = NewImageIngestor(DefaultMaxImageBytes, DefaultImageTypes)
	}
	return &PostService{repo: repo, images: images, paging: paging.normalize(), opts: buildOptions(opts)}
}

// Create 图片编码失败时不写库
func (s *PostService) Create(ctx context.Context, in PostInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" || in.Image == nil {
		return nil, domain.Invalid("", "title, description and image are required")
	}
	if err := checkTitle(title); err != nil {
		return nil, err
	}
	if err := checkDescription(desc); err != nil {
		return nil, err
	}
	imageURL, err := s.images.ToDataURL(*in.Image)
	if err != nil {
		return nil, err
	}

	p := domain.Post{Title: title, Description: desc, ImageURL: imageURL}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.opts.log.Debug("post created", zap.String("id", p.ID), zap.Int("image_url_len", len(imageURL)))
	return &p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return cache.GetOrLoadJSON(s.opts.cache, ctx, postKey(id), s.opts.ttl, func(ctx context.Context) (*domain.Post, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *PostService) Update(ctx context.Context, id string, in PostUpdate) (*domain.Post, error) {
	var patch domain.PostPatch
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, domain.Invalid("title", "title is required")
		}
		if err := checkTitle(t); err != nil {
			return nil, err
		}
		patch.Title = &t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, domain.Invalid("description", "description is required")
		}
		if err := checkDescription(d); err != nil {
			return nil, err
		}
		patch.Description = &d
	}
	if in.Image != nil && in.Image.Size > 0 {
		imageURL, err := s.images.ToDataURL(*in.Image)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &imageURL
	}

	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.opts.evict(ctx, postKey(id))
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.evict(ctx, postKey(id))
	s.opts.log.Debug("post deleted", zap.String("id", id))
	return nil
}

// List filter -> count -> sort/skip/limit -> 分页信息
func (s *PostService) List(ctx context.Context, params PostListParams) (*domain.PostPage, error) {
	f, lq, page, limit, err := params.resolve(s.paging)
	if err != nil {
		return nil, err
	}
	items, total, err := s.repo.List(ctx, f, lq)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Post{}
	}
	return &domain.PostPage{Posts: items, Pagination: domain.NewPagination(page, limit, total)}, nil
}

func checkTitle(v string) error {
	if utf8.RuneCountInString(v) > MaxTitleLen {
		return domain.Invalid("title", fmt.Sprintf("title cannot be more than %d characters", MaxTitleLen))
	}
	return nil
}

func checkDescription(v string) error {
	if utf8.RuneCountInString(v) > MaxDescriptionLen {
		return domain.Invalid("description", fmt.Sprintf("description cannot be more than %d characters", MaxDescriptionLen))
	}
	return nil
}

func postKey(id string) string { return "post:" + id }
