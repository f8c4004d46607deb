package post

import (
	"time"

	"go-gin-contact-board/internal/domain"
)

type PostModel struct {
	ID          string `gorm:"primaryKey;type:varchar(32)"`
	Title       string `gorm:"size:100;not null;index"`
	Description string `gorm:"size:500;not null"`
	// base64 data URL，5MiB 原图编码后约 7MB：mysql 落到 mediumtext，postgres/sqlite 为 text
	ImageURL string `gorm:"column:image_url;size:16777216;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string { return "posts" }

var Columns = map[string]string{
	"title":       "title",
	"description": "description",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

func FromDomain(p *domain.Post) PostModel {
	return PostModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m PostModel) ToDomain() domain.Post {
	return domain.Post{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func PatchColumns(p domain.PostPatch) map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	return cols
}
