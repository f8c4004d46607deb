package domain

import (
	"context"
	"time"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Group     string    `json:"group,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactPatch 部分更新；nil 字段不改
type ContactPatch struct {
	Name  *string
	Email *string
	Phone *string
	Group *string
}

func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Group == nil
}

type ContactFilter struct {
	Name  string // 大小写不敏感的子串匹配
	Group string // 精确匹配
}

// ContactSortFields 允许排序的字段（对外名称）
var ContactSortFields = []string{"name", "email", "phone", "group", "createdAt", "updatedAt"}

type ContactRepository interface {
	Create(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	Update(ctx context.Context, id string, p ContactPatch) (*Contact, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ContactFilter, q ListQuery) ([]Contact, int64, error)
}
