package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 32 位十六进制（去掉横线的 uuid v4）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
