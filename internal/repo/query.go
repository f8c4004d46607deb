package repo

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-contact-board/internal/core/database"
	"go-gin-contact-board/internal/domain"
)

// LIKE 转义：三种方言都支持显式 ESCAPE，统一用 '!'（反斜杠在 mysql 字面量里还要再转义一次）
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsFold 大小写不敏感的子串匹配，term 不作为模式解释，也不去掉首尾空格
func containsFold(col, term string) func(*gorm.DB) *gorm.DB {
	blank := strings.TrimSpace(term) == ""
	return func(q *gorm.DB) *gorm.DB {
		if blank {
			return q
		}
		switch q.Dialector.Name() {
		case "postgres":
			return q.Where(col+" ILIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(term)+"%")
		case "sqlite":
			return q.Where(database.SQLiteLowerFunc+"("+col+") LIKE ? ESCAPE '!'", foldPattern(term))
		default:
			// mysql 的 LOWER 按列字符集处理 Unicode
			return q.Where("LOWER("+col+") LIKE ? ESCAPE '!'", foldPattern(term))
		}
	}
}

func foldPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func equals(col, v string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if v == "" {
			return q
		}
		return q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: v})
	}
}

// window 排序 + 偏移；同值按 id 升序保证翻页稳定
func window(columns map[string]string, fallback string, lq domain.ListQuery) (func(*gorm.DB) *gorm.DB, error) {
	field := lq.Sort.Field
	if field == "" {
		field = fallback
	}
	col, ok := columns[field]
	if !ok {
		return nil, &domain.ValidationError{Field: "sortBy", Msg: fmt.Sprintf("cannot sort by %q", field)}
	}
	return func(q *gorm.DB) *gorm.DB {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: lq.Sort.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		if lq.Offset > 0 {
			q = q.Offset(lq.Offset)
		}
		if lq.Limit > 0 {
			q = q.Limit(lq.Limit)
		}
		return q
	}, nil
}
