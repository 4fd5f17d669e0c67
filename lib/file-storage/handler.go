package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Provider - хранилище файлов отчетов (вложения и подписи).
// Ключи формирует вызывающая сторона, хранилище их не интерпретирует.
type Provider interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

func NewHandler(client *minio.Client, bucket string) Provider {
	return &impl{
		client: client,
		bucket: bucket,
	}
}

type impl struct {
	client *minio.Client
	bucket string
}

func (i impl) ensureBucket(ctx context.Context) error {
	exists, err := i.client.BucketExists(ctx, i.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.client.MakeBucket(ctx, i.bucket, minio.MakeBucketOptions{})
}

func (i impl) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := i.ensureBucket(ctx); err != nil {
		return errors.Wrap(err, "ошибка проверки бакета")
	}
	_, err := i.client.PutObject(ctx, i.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения файла")
	}
	return nil
}

func (i impl) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.client.GetObject(ctx, i.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла")
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return data, nil
}

func (i impl) Delete(ctx context.Context, key string) error {
	err := i.client.RemoveObject(ctx, i.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла")
	}
	return nil
}
