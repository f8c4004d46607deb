package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"go-gin-contact-board/internal/core/cache"
	"go-gin-contact-board/internal/domain"
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// ContactInput 创建联系人
type ContactInput struct {
	Name  string
	Email string
	Phone string
	Group string
}

type ContactService struct {
	repo domain.ContactRepository
	opts options
}

func NewContactService(repo domain.ContactRepository, opts ...Option) *ContactService {
	return &ContactService{repo: repo, opts: buildOptions(opts)}
}

func (s *ContactService) Create(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	// 按提交的原值保存；空白只在校验时忽略
	c := domain.Contact{Name: in.Name, Email: in.Email, Phone: in.Phone, Group: in.Group}
	if err := checkContactName(c.Name); err != nil {
		return nil, err
	}
	if err := checkEmail(c.Email); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.opts.log.Debug("contact created", zap.String("id", c.ID))
	return &c, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return cache.GetOrLoadJSON(s.opts.cache, ctx, contactKey(id), s.opts.ttl, func(ctx context.Context) (*domain.Contact, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Update 部分更新；只校验提交了的字段
func (s *ContactService) Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	if p.Name != nil {
		if err := checkContactName(*p.Name); err != nil {
			return nil, err
		}
	}
	if p.Email != nil {
		if err := checkEmail(*p.Email); err != nil {
			return nil, err
		}
	}
	c, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.opts.evict(ctx, contactKey(id))
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.evict(ctx, contactKey(id))
	s.opts.log.Debug("contact deleted", zap.String("id", id))
	return nil
}

// List 返回过滤后的全部联系人（不分页）
func (s *ContactService) List(ctx context.Context, params ContactListParams) ([]domain.Contact, error) {
	f, lq, err := params.resolve()
	if err != nil {
		return nil, err
	}
	items, _, err := s.repo.List(ctx, f, lq)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Contact{}
	}
	return items, nil
}

func checkContactName(v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.Invalid("name", "name is required")
	}
	return nil
}

func checkEmail(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.Invalid("email", "email is required")
	}
	if !emailPattern.MatchString(v) {
		return domain.Invalid("email", "email is invalid")
	}
	return nil
}

func contactKey(id string) string { return "contact:" + id }
