package storage

import (
	"context"
	"io"
)

// UploadResult описывает загруженный объект: ключ, публичный URL и ETag
// без кавычек.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader — публикация снапшотов (таблицы, сетки) в объектное
// хранилище. Ключи задаёт вызывающий: snapshots/<tournament>/<division>/...
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
