package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader — хранилище бинарных файлов (постеры турниров). Листинг
// использует только GetPublicURL: poster_key из БД превращается в публичный
// URL на пути чтения, сами загрузки приходят из организаторских инструментов.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
