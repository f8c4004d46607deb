package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-contact-board/internal/core/database"
	"go-gin-contact-board/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "board.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func names(cs []domain.Contact) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func titles(ps []domain.Post) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestContactRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewContactRepo(newTestDB(t))

	c := domain.Contact{Name: "Ada", Email: "ada@example.com", Group: "work"}
	require.NoError(t, r.Create(ctx, &c))
	assert.Len(t, c.ID, 32)
	assert.False(t, c.CreatedAt.IsZero())
	assert.False(t, c.UpdatedAt.IsZero())

	got, err := r.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "work", got.Group)

	phone := "555-0100"
	up, err := r.Update(ctx, c.ID, domain.ContactPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", up.Phone)
	assert.Equal(t, "Ada", up.Name, "untouched fields are kept")
	assert.Equal(t, c.ID, up.ID)

	same, err := r.Update(ctx, c.ID, domain.ContactPatch{})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", same.Phone)

	require.NoError(t, r.Delete(ctx, c.ID))
	_, err = r.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestContactRepo_MissingID(t *testing.T) {
	ctx := context.Background()
	r := NewContactRepo(newTestDB(t))

	_, err := r.FindByID(ctx, "0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name := "x"
	_, err = r.Update(ctx, "0123456789abcdef0123456789abcdef", domain.ContactPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Update(ctx, "0123456789abcdef0123456789abcdef", domain.ContactPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRepo_ListFilterAndSort(t *testing.T) {
	ctx := context.Background()
	r := NewContactRepo(newTestDB(t))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []domain.Contact{
		{Name: "Charlie Brown", Email: "c@example.com", Group: "friends", CreatedAt: base.Add(2 * time.Hour)},
		{Name: "alice", Email: "a@example.com", Group: "work", CreatedAt: base},
		{Name: "Bob", Email: "b@example.com", Group: "work", CreatedAt: base.Add(time.Hour)},
	}
	for i := range seed {
		require.NoError(t, r.Create(ctx, &seed[i]))
	}

	all, total, err := r.List(ctx, domain.ContactFilter{}, domain.ListQuery{Sort: domain.Sort{Field: "createdAt"}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"alice", "Bob", "Charlie Brown"}, names(all))

	desc, _, err := r.List(ctx, domain.ContactFilter{}, domain.ListQuery{Sort: domain.Sort{Field: "createdAt", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie Brown", "Bob", "alice"}, names(desc))

	work, total, err := r.List(ctx, domain.ContactFilter{Group: "work"}, domain.ListQuery{Sort: domain.Sort{Field: "createdAt"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"alice", "Bob"}, names(work))

	both, _, err := r.List(ctx, domain.ContactFilter{Name: "B", Group: "work"}, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, names(both), "filters are ANDed")

	brown, _, err := r.List(ctx, domain.ContactFilter{Name: "BROWN"}, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie Brown"}, names(brown))

	none, total, err := r.List(ctx, domain.ContactFilter{Group: "family"}, domain.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestContactRepo_ListUnknownSortField(t *testing.T) {
	r := NewContactRepo(newTestDB(t))
	_, _, err := r.List(context.Background(), domain.ContactFilter{}, domain.ListQuery{Sort: domain.Sort{Field: "password"}})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sortBy", ve.Field)
}

func TestPostRepo_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepo(newTestDB(t))

	for _, title := range []string{"Hello World", "Other", "Đà Nẵng Ém"} {
		p := domain.Post{Title: title, Description: "d", ImageURL: "data:image/png;base64,AA=="}
		require.NoError(t, r.Create(ctx, &p))
	}

	cases := []struct {
		term string
		want []string
	}{
		{"hello", []string{"Hello World"}},
		{"HELLO", []string{"Hello World"}},
		{"World", []string{"Hello World"}},
		{"o W", []string{"Hello World"}},
		{" World", []string{"Hello World"}},
		{" Hello", []string{}},
		{"xyz", []string{}},
		{"Đà Nẵng Ém", []string{"Đà Nẵng Ém"}},
		{"Đà", []string{"Đà Nẵng Ém"}},
		{"đà", []string{"Đà Nẵng Ém"}},
		{"ém", []string{"Đà Nẵng Ém"}},
		{"NẴNG", []string{"Đà Nẵng Ém"}},
		{"", []string{"Hello World", "Other", "Đà Nẵng Ém"}},
		{"   ", []string{"Hello World", "Other", "Đà Nẵng Ém"}},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			got, total, err := r.List(ctx, domain.PostFilter{Title: tc.term}, domain.ListQuery{Sort: domain.Sort{Field: "title"}})
			require.NoError(t, err)
			assert.EqualValues(t, len(tc.want), total)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestPostRepo_SearchTermIsNotAPattern(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepo(newTestDB(t))

	for _, title := range []string{"100% real", "100 real", "a_b", "axb", "wow!"} {
		p := domain.Post{Title: title, Description: "d", ImageURL: "x"}
		require.NoError(t, r.Create(ctx, &p))
	}

	got, _, err := r.List(ctx, domain.PostFilter{Title: "%"}, domain.ListQuery{Sort: domain.Sort{Field: "title"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% real"}, titles(got))

	got, _, err = r.List(ctx, domain.PostFilter{Title: "_"}, domain.ListQuery{Sort: domain.Sort{Field: "title"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b"}, titles(got))

	got, _, err = r.List(ctx, domain.PostFilter{Title: "!"}, domain.ListQuery{Sort: domain.Sort{Field: "title"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"wow!"}, titles(got))
}

func TestPostRepo_ListWindow(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepo(newTestDB(t))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"p1", "p2", "p3", "p4", "p5"} {
		p := domain.Post{Title: title, Description: "d", ImageURL: "x", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, r.Create(ctx, &p))
	}

	newest := domain.Sort{Field: "createdAt", Desc: true}
	page1, total, err := r.List(ctx, domain.PostFilter{}, domain.ListQuery{Sort: newest, Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []string{"p5", "p4"}, titles(page1))

	oldest, _, err := r.List(ctx, domain.PostFilter{}, domain.ListQuery{Sort: domain.Sort{Field: "createdAt"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, titles(oldest))

	page3, total, err := r.List(ctx, domain.PostFilter{}, domain.ListQuery{Sort: newest, Offset: 4, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []string{"p1"}, titles(page3))

	beyond, total, err := r.List(ctx, domain.PostFilter{}, domain.ListQuery{Sort: newest, Offset: 40, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total, "total stays accurate past the last page")
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestPostRepo_TiesBrokenByID(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepo(newTestDB(t))

	ids := []string{"cccccccccccccccccccccccccccccccc", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}
	for _, id := range ids {
		p := domain.Post{ID: id, Title: "same", Description: "d", ImageURL: "x"}
		require.NoError(t, r.Create(ctx, &p))
	}
	got, _, err := r.List(ctx, domain.PostFilter{}, domain.ListQuery{Sort: domain.Sort{Field: "title", Desc: true}})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[1], got[0].ID)
	assert.Equal(t, ids[2], got[1].ID)
	assert.Equal(t, ids[0], got[2].ID)
}

func TestPostRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepo(newTestDB(t))

	p := domain.Post{Title: "t", Description: "d", ImageURL: "data:image/gif;base64,R0lG"}
	require.NoError(t, r.Create(ctx, &p))

	img := "data:image/png;base64,iVBO"
	up, err := r.Update(ctx, p.ID, domain.PostPatch{ImageURL: &img})
	require.NoError(t, err)
	assert.Equal(t, img, up.ImageURL)
	assert.Equal(t, "t", up.Title)
	assert.Equal(t, p.CreatedAt.Unix(), up.CreatedAt.Unix(), "createdAt is immutable")

	require.NoError(t, r.Delete(ctx, p.ID))
	_, err = r.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
