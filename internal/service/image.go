package service

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/docker/go-units"
	"github.com/prometheus/client_golang/prometheus"

	"go-gin-contact-board/internal/domain"
)

const (
	DefaultMaxImageBytes int64 = 5 << 20
	DefaultImageMIME           = "image/jpeg"
)

// DefaultImageTypes 与前端表单一致
var DefaultImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"}

var imagesIngested = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "images_ingested_total", Help: "Uploaded images by ingestion result"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(imagesIngested) }

// Upload 一个上传的文件；Size 为客户端声明的大小
type Upload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// ImageIngestor 把上传的图片转成内联的 data URL
type ImageIngestor struct {
	maxBytes int64
	allowed  map[string]struct{}
}

// NewImageIngestor allowedTypes 为空时不校验类型
func NewImageIngestor(maxBytes int64, allowedTypes []string) *ImageIngestor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &ImageIngestor{maxBytes: maxBytes, allowed: allowed}
}

func (g *ImageIngestor) MaxBytes() int64 { return g.maxBytes }

// ToDataURL 校验大小和类型后编码为 data:<mime>;base64,<payload>
func (g *ImageIngestor) ToDataURL(u Upload) (string, error) {
	if u.Size > g.maxBytes {
		imagesIngested.WithLabelValues("too_large").Inc()
		return "", g.tooLarge()
	}
	mt := normalizeMIME(u.ContentType)
	if len(g.allowed) > 0 {
		if _, ok := g.allowed[mt]; !ok {
			imagesIngested.WithLabelValues("bad_type").Inc()
			return "", &domain.ValidationError{
				Field: "image",
				Msg:   fmt.Sprintf("unsupported image type %q", mt),
				Err:   domain.ErrUnsupportedImageType,
			}
		}
	}
	if u.Body == nil {
		imagesIngested.WithLabelValues("read_error").Inc()
		return "", &domain.ImageProcessingError{Err: io.ErrUnexpectedEOF}
	}

	// 声明的大小不可信，多读 1 字节判断是否超限
	b, err := io.ReadAll(io.LimitReader(u.Body, g.maxBytes+1))
	if err != nil {
		imagesIngested.WithLabelValues("read_error").Inc()
		return "", &domain.ImageProcessingError{Err: err}
	}
	if int64(len(b)) > g.maxBytes {
		imagesIngested.WithLabelValues("too_large").Inc()
		return "", g.tooLarge()
	}

	imagesIngested.WithLabelValues("ok").Inc()
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func (g *ImageIngestor) tooLarge() error {
	return &domain.ValidationError{
		Field: "image",
		Msg:   "file too large, maximum size is " + units.BytesSize(float64(g.maxBytes)),
		Err:   domain.ErrPayloadTooLarge,
	}
}

func normalizeMIME(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return DefaultImageMIME
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt // 已转小写
	}
	return strings.ToLower(ct)
}
