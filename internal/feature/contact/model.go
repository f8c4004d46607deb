package contact

import (
	"time"

	"go-gin-contact-board/internal/domain"
)

type ContactModel struct {
	ID    string `gorm:"primaryKey;type:varchar(32)"`
	Name  string `gorm:"size:128;not null;index"`
	Email string `gorm:"size:255;not null"`
	Phone string `gorm:"size:64"`
	Group string `gorm:"column:contact_group;size:64;index"` // group 是保留字

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ContactModel) TableName() string { return "contacts" }

// Columns 对外排序字段 -> 列名
var Columns = map[string]string{
	"name":      "name",
	"email":     "email",
	"phone":     "phone",
	"group":     "contact_group",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func FromDomain(c *domain.Contact) ContactModel {
	return ContactModel{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Group:     c.Group,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m ContactModel) ToDomain() domain.Contact {
	return domain.Contact{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Group:     m.Group,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PatchColumns 只包含要修改的列
func PatchColumns(p domain.ContactPatch) map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Group != nil {
		cols["contact_group"] = *p.Group
	}
	return cols
}
