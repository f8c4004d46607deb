package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-contact-board/internal/domain"
	"go-gin-contact-board/internal/feature/contact"
	"go-gin-contact-board/pkg/utils"
)

type ContactRepo struct{ db *gorm.DB }

var _ domain.ContactRepository = (*ContactRepo)(nil)

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	m := contact.FromDomain(c)
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	*c = m.ToDomain()
	return nil
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	var m contact.ContactModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	c := m.ToDomain()
	return &c, nil
}

func (r *ContactRepo) Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	if p.Empty() {
		return r.FindByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&contact.ContactModel{}).Where("id = ?", id).Updates(contact.PatchColumns(p))
	if res.Error != nil {
		return nil, fmt.Errorf("update contact: %w", res.Error)
	}
	// MySQL 对值未变的行返回 0，是否存在交给 FindByID 判断
	return r.FindByID(ctx, id)
}

// Delete 硬删除
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&contact.ContactModel{})
	if res.Error != nil {
		return fmt.Errorf("delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) List(ctx context.Context, f domain.ContactFilter, lq domain.ListQuery) ([]domain.Contact, int64, error) {
	win, err := window(contact.Columns, "name", lq)
	if err != nil {
		return nil, 0, err
	}
	filter := []func(*gorm.DB) *gorm.DB{
		containsFold("name", f.Name),
		equals("contact_group", f.Group),
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&contact.ContactModel{}).Scopes(filter...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	var ms []contact.ContactModel
	if err := r.db.WithContext(ctx).Model(&contact.ContactModel{}).Scopes(filter...).Scopes(win).Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	out := make([]domain.Contact, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, total, nil
}
