package handler

import (
	"errors"

	"go-gin-contact-board/internal/domain"
	"go-gin-contact-board/internal/transport/http/ez"
)

// fail 领域错误 -> HTTP；notFound / internal 为对应场景的提示
func fail(err error, notFound, internal string) error {
	var ve *domain.ValidationError
	var ie *domain.ImageProcessingError
	switch {
	case errors.As(err, &ve):
		return ez.BadRequest(ve.Error())
	case errors.As(err, &ie):
		return &ez.AErr{Code: 400, Msg: "could not process image", Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return ez.NotFound(notFound)
	default:
		return ez.Internal(internal, err)
	}
}
