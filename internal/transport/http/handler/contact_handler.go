package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-contact-board/internal/domain"
	"go-gin-contact-board/internal/service"
	"go-gin-contact-board/internal/transport/http/ez"
	resp "go-gin-contact-board/internal/transport/http/response"
)

type ContactHandler struct {
	svc *service.ContactService
	log *zap.Logger
}

func NewContactHandler(svc *service.ContactService, l *zap.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: l}
}

func (h *ContactHandler) Priority() int { return 10 }

type contactCreateIn struct {
	Name  string `json:"name"  binding:"max=128"`
	Email string `json:"email" binding:"max=255"`
	Phone string `json:"phone" binding:"max=64"`
	Group string `json:"group" binding:"max=64"`
}

type contactUpdateIn struct {
	Name  *string `json:"name"  binding:"omitempty,max=128"`
	Email *string `json:"email" binding:"omitempty,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=64"`
	Group *string `json:"group" binding:"omitempty,max=64"`
}

// MountAPI /contacts
func (h *ContactHandler) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/contacts"), h.log)

	ez.RegisterAction(g, ez.Action[service.ContactListParams, []domain.Contact]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *service.ContactListParams) ([]domain.Contact, error) {
			items, err := h.svc.List(c.Request.Context(), *in)
			if err != nil {
				return nil, fail(err, "", "error fetching contacts")
			}
			return items, nil
		},
	})

	ez.RegisterAction(g, ez.Action[contactCreateIn, *domain.Contact]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *contactCreateIn) (*domain.Contact, error) {
			ct, err := h.svc.Create(c.Request.Context(), service.ContactInput{
				Name: in.Name, Email: in.Email, Phone: in.Phone, Group: in.Group,
			})
			if err != nil {
				return nil, fail(err, "", "error creating contact")
			}
			return ct, nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, *domain.Contact]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Contact, error) {
			ct, err := h.svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, fail(err, "contact not found", "error fetching contact")
			}
			return ct, nil
		},
	})

	ez.RegisterAction(g, ez.Action[contactUpdateIn, *domain.Contact]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *contactUpdateIn) (*domain.Contact, error) {
			ct, err := h.svc.Update(c.Request.Context(), c.Param("id"), domain.ContactPatch{
				Name: in.Name, Email: in.Email, Phone: in.Phone, Group: in.Group,
			})
			if err != nil {
				return nil, fail(err, "contact not found", "error updating contact")
			}
			return ct, nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, resp.Msg]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Msg, error) {
			if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				return resp.Msg{}, fail(err, "contact not found", "error deleting contact")
			}
			return resp.Message("contact deleted successfully"), nil
		},
	})
}
