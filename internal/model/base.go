package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成带业务前缀的短ID，例如 unit_1a2b3c4d、q_9f8e7d6c
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
