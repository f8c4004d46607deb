package service

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go-gin-contact-board/internal/domain"
)

const (
	DefaultPostLimit = 9
	DefaultMaxLimit  = 100

	maxPage = 1 << 30
)

// Paging 分页默认值
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Paging) normalize() Paging {
	if p.DefaultLimit <= 0 {
		p.DefaultLimit = DefaultPostLimit
	}
	if p.MaxLimit <= 0 {
		p.MaxLimit = DefaultMaxLimit
	}
	if p.DefaultLimit > p.MaxLimit {
		p.DefaultLimit = p.MaxLimit
	}
	return p
}

// ContactListParams GET /contacts 的查询参数；search 是 name 的别名
type ContactListParams struct {
	Name      string `form:"name"`
	Search    string `form:"search"`
	Group     string `form:"group"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// PostListParams page/limit 按字符串接收，非法值回落到默认
type PostListParams struct {
	Search    string `form:"search"`
	Name      string `form:"name"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
}

// 联系人不分页：默认 name 升序，只有 "desc" 才降序
func (p ContactListParams) resolve() (domain.ContactFilter, domain.ListQuery, error) {
	term := p.Name
	if strings.TrimSpace(term) == "" {
		term = p.Search
	}
	sort, err := resolveSort(p.SortBy, p.SortOrder, domain.ContactSortFields, "name", false)
	if err != nil {
		return domain.ContactFilter{}, domain.ListQuery{}, err
	}
	// 搜索词与分组都保留空格，和入库值一致
	group := p.Group
	if strings.TrimSpace(group) == "" {
		group = ""
	}
	f := domain.ContactFilter{Name: term, Group: group}
	return f, domain.ListQuery{Sort: sort}, nil
}

// 帖子分页：默认 createdAt 降序，只有 "asc" 才升序
func (p PostListParams) resolve(pg Paging) (domain.PostFilter, domain.ListQuery, int, int, error) {
	pg = pg.normalize()
	term := p.Search
	if strings.TrimSpace(term) == "" {
		term = p.Name
	}
	sort, err := resolveSort(p.SortBy, p.SortOrder, domain.PostSortFields, "createdAt", true)
	if err != nil {
		return domain.PostFilter{}, domain.ListQuery{}, 0, 0, err
	}
	page := min(atoiDefault(p.Page, 1), maxPage)
	limit := atoiDefault(p.Limit, pg.DefaultLimit)
	if limit > pg.MaxLimit {
		limit = pg.MaxLimit
	}
	lq := domain.ListQuery{Sort: sort, Offset: (page - 1) * limit, Limit: limit}
	return domain.PostFilter{Title: term}, lq, page, limit, nil
}

// resolveSort sortOrder 只认 asc/desc，其他值用资源默认方向
func resolveSort(field, order string, allowed []string, defField string, defDesc bool) (domain.Sort, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = defField
	}
	if !slices.Contains(allowed, field) {
		return domain.Sort{}, &domain.ValidationError{
			Field: "sortBy",
			Msg:   fmt.Sprintf("cannot sort by %q, allowed: %s", field, strings.Join(allowed, ", ")),
		}
	}
	desc := defDesc
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}
	return domain.Sort{Field: field, Desc: desc}, nil
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
		return v
	}
	return def
}
