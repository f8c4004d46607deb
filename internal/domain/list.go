package domain

// Sort 排序字段使用对外名称（如 createdAt），由 repo 映射到列
type Sort struct {
	Field string
	Desc  bool
}

// ListQuery 存储层查询窗口；Limit 为 0 表示不分页
type ListQuery struct {
	Sort   Sort
	Offset int
	Limit  int
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination pages = ceil(total/limit)，没有数据时为 0
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 && total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
