package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-contact-board/internal/domain"
)

func TestContactListParams_Defaults(t *testing.T) {
	f, lq, err := ContactListParams{}.resolve()
	require.NoError(t, err)
	assert.Equal(t, domain.ContactFilter{}, f)
	assert.Equal(t, domain.Sort{Field: "name"}, lq.Sort)
	assert.Zero(t, lq.Limit, "contacts are not paginated")
	assert.Zero(t, lq.Offset)
}

func TestContactListParams_Resolve(t *testing.T) {
	cases := []struct {
		name   string
		in     ContactListParams
		filter domain.ContactFilter
		sort   domain.Sort
	}{
		{"name and group", ContactListParams{Name: " ann ", Group: "work"}, domain.ContactFilter{Name: " ann ", Group: "work"}, domain.Sort{Field: "name"}},
		{"group matched as stored", ContactListParams{Group: " work "}, domain.ContactFilter{Group: " work "}, domain.Sort{Field: "name"}},
		{"blank group ignored", ContactListParams{Group: "  "}, domain.ContactFilter{}, domain.Sort{Field: "name"}},
		{"search alias", ContactListParams{Search: "bo"}, domain.ContactFilter{Name: "bo"}, domain.Sort{Field: "name"}},
		{"name wins over search", ContactListParams{Name: "a", Search: "b"}, domain.ContactFilter{Name: "a"}, domain.Sort{Field: "name"}},
		{"desc", ContactListParams{SortBy: "createdAt", SortOrder: "desc"}, domain.ContactFilter{}, domain.Sort{Field: "createdAt", Desc: true}},
		{"unknown order is ascending", ContactListParams{SortBy: "email", SortOrder: "sideways"}, domain.ContactFilter{}, domain.Sort{Field: "email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, lq, err := tc.in.resolve()
			require.NoError(t, err)
			assert.Equal(t, tc.filter, f)
			assert.Equal(t, tc.sort, lq.Sort)
		})
	}
}

func TestPostListParams_Defaults(t *testing.T) {
	f, lq, page, limit, err := PostListParams{}.resolve(Paging{})
	require.NoError(t, err)
	assert.Equal(t, domain.PostFilter{}, f)
	assert.Equal(t, domain.Sort{Field: "createdAt", Desc: true}, lq.Sort)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPostLimit, limit)
	assert.Equal(t, 0, lq.Offset)
	assert.Equal(t, DefaultPostLimit, lq.Limit)
}

func TestPostListParams_Resolve(t *testing.T) {
	pg := Paging{DefaultLimit: 9, MaxLimit: 100}
	cases := []struct {
		name        string
		in          PostListParams
		page, limit int
		offset      int
		sort        domain.Sort
		filterTitle string
	}{
		{"second page", PostListParams{Page: "2", Limit: "5"}, 2, 5, 5, domain.Sort{Field: "createdAt", Desc: true}, ""},
		{"garbage page", PostListParams{Page: "abc", Limit: "-3"}, 1, 9, 0, domain.Sort{Field: "createdAt", Desc: true}, ""},
		{"zero page", PostListParams{Page: "0"}, 1, 9, 0, domain.Sort{Field: "createdAt", Desc: true}, ""},
		{"limit capped", PostListParams{Limit: "1000"}, 1, 100, 0, domain.Sort{Field: "createdAt", Desc: true}, ""},
		{"asc", PostListParams{SortBy: "title", SortOrder: "asc"}, 1, 9, 0, domain.Sort{Field: "title"}, ""},
		{"unknown order is descending", PostListParams{SortOrder: "up"}, 1, 9, 0, domain.Sort{Field: "createdAt", Desc: true}, ""},
		{"search keeps spaces", PostListParams{Search: " hello "}, 1, 9, 0, domain.Sort{Field: "createdAt", Desc: true}, " hello "},
		{"blank search falls back to name", PostListParams{Search: "  ", Name: "world"}, 1, 9, 0, domain.Sort{Field: "createdAt", Desc: true}, "world"},
		{"name alias", PostListParams{Name: "world"}, 1, 9, 0, domain.Sort{Field: "createdAt", Desc: true}, "world"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, lq, page, limit, err := tc.in.resolve(pg)
			require.NoError(t, err)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
			assert.Equal(t, tc.offset, lq.Offset)
			assert.Equal(t, tc.limit, lq.Limit)
			assert.Equal(t, tc.sort, lq.Sort)
			assert.Equal(t, tc.filterTitle, f.Title)
		})
	}
}

func TestPostListParams_HugePageIsClamped(t *testing.T) {
	_, lq, page, _, err := PostListParams{Page: "99999999999999999999", Limit: "100"}.resolve(Paging{})
	require.NoError(t, err)
	assert.Equal(t, 1, page, "unparseable as int falls back")

	_, lq, page, _, err = PostListParams{Page: "2000000000", Limit: "100"}.resolve(Paging{})
	require.NoError(t, err)
	assert.Equal(t, maxPage, page)
	assert.Equal(t, (maxPage-1)*100, lq.Offset)
}

func TestResolveSort_RejectsUnknownField(t *testing.T) {
	_, _, err := ContactListParams{SortBy: "password"}.resolve()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sortBy", ve.Field)

	_, _, _, _, err = PostListParams{SortBy: "imageUrl"}.resolve(Paging{})
	assert.ErrorAs(t, err, &ve)
}

func TestPaging_Normalize(t *testing.T) {
	assert.Equal(t, Paging{DefaultLimit: 9, MaxLimit: 100}, Paging{}.normalize())
	assert.Equal(t, Paging{DefaultLimit: 5, MaxLimit: 5}, Paging{DefaultLimit: 20, MaxLimit: 5}.normalize())
}
