package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-contact-board/internal/domain"
	"go-gin-contact-board/internal/service"
	"go-gin-contact-board/internal/transport/http/ez"
	resp "go-gin-contact-board/internal/transport/http/response"
)

type PostHandler struct {
	svc *service.PostService
	log *zap.Logger
}

func NewPostHandler(svc *service.PostService, l *zap.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: l}
}

func (h *PostHandler) Priority() int { return 20 }

// postForm multipart 表单；缺省字段为 nil
type postForm struct {
	Title       *string               `form:"title"`
	Description *string               `form:"description"`
	Image       *multipart.FileHeader `form:"image"`
}

// MountAPI /posts
func (h *PostHandler) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/posts"), h.log)

	ez.RegisterAction(g, ez.Action[service.PostListParams, *domain.PostPage]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *service.PostListParams) (*domain.PostPage, error) {
			page, err := h.svc.List(c.Request.Context(), *in)
			if err != nil {
				return nil, fail(err, "", "could not load posts")
			}
			return page, nil
		},
	})

	ez.RegisterAction(g, ez.Action[postForm, *domain.Post]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindForm,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *postForm) (*domain.Post, error) {
			up, closeFn, err := openUpload(in.Image)
			if err != nil {
				return nil, fail(err, "", "could not create post")
			}
			defer closeFn()
			p, err := h.svc.Create(c.Request.Context(), service.PostInput{
				Title:       deref(in.Title),
				Description: deref(in.Description),
				Image:       up,
			})
			if err != nil {
				return nil, fail(err, "", "could not create post")
			}
			return p, nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, *domain.Post]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Post, error) {
			p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, fail(err, "post not found", "could not load post")
			}
			return p, nil
		},
	})

	ez.RegisterAction(g, ez.Action[postForm, *domain.Post]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindForm,
		Handler: func(c *gin.Context, in *postForm) (*domain.Post, error) {
			up, closeFn, err := openUpload(in.Image)
			if err != nil {
				return nil, fail(err, "post not found", "could not update post")
			}
			defer closeFn()
			p, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.PostUpdate{
				Title:       in.Title,
				Description: in.Description,
				Image:       up,
			})
			if err != nil {
				return nil, fail(err, "post not found", "could not update post")
			}
			return p, nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, resp.Msg]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Msg, error) {
			if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				return resp.Msg{}, fail(err, "post not found", "could not delete post")
			}
			return resp.Message("post deleted successfully"), nil
		},
	})
}

// openUpload 没有文件时返回 nil
func openUpload(fh *multipart.FileHeader) (*service.Upload, func(), error) {
	if fh == nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, &domain.ImageProcessingError{Err: err}
	}
	return &service.Upload{
		Body:        f,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}, func() { _ = f.Close() }, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
