package domain

import "errors"

var (
	ErrNotFound             = errors.New("record not found")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// ValidationError 输入不合法（缺字段 / 超长 / 格式错误 / 图片不合规），对应 400
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "invalid " + e.Field
}

func (e *ValidationError) Unwrap() error { return e.Err }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// ImageProcessingError 读取上传内容失败
type ImageProcessingError struct{ Err error }

func (e *ImageProcessingError) Error() string {
	if e.Err == nil {
		return "image processing failed"
	}
	return "image processing failed: " + e.Err.Error()
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }
