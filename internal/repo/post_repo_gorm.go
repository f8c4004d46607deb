package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-contact-board/internal/domain"
	"go-gin-contact-board/internal/feature/post"
	"go-gin-contact-board/pkg/utils"
)

type PostRepo struct{ db *gorm.DB }

var _ domain.PostRepository = (*PostRepo)(nil)

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	m := post.FromDomain(p)
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	*p = m.ToDomain()
	return nil
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var m post.PostModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	p := m.ToDomain()
	return &p, nil
}

func (r *PostRepo) Update(ctx context.Context, id string, p domain.PostPatch) (*domain.Post, error) {
	if p.Empty() {
		return r.FindByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&post.PostModel{}).Where("id = ?", id).Updates(post.PatchColumns(p))
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	// MySQL 对值未变的行返回 0，是否存在交给 FindByID 判断
	return r.FindByID(ctx, id)
}

// Delete 图片内联在记录里，删行即回收，无需清理外部对象
func (r *PostRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&post.PostModel{})
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepo) List(ctx context.Context, f domain.PostFilter, lq domain.ListQuery) ([]domain.Post, int64, error) {
	win, err := window(post.Columns, "createdAt", lq)
	if err != nil {
		return nil, 0, err
	}
	search := containsFold("title", f.Title)

	var total int64
	if err := r.db.WithContext(ctx).Model(&post.PostModel{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	var ms []post.PostModel
	if err := r.db.WithContext(ctx).Model(&post.PostModel{}).Scopes(search, win).Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	out := make([]domain.Post, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, total, nil
}
