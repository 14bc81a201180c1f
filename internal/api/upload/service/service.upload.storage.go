package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"facility_works/config"
	"facility_works/internal/common"
)

// StorageService lưu file đính kèm phiếu yêu cầu lên object storage.
type StorageService struct {
	client *minio.Client
	bucket string
}

// NewStorageService khởi tạo kết nối object storage và đảm bảo bucket tồn tại.
func NewStorageService(cfg *config.Configuration) (*StorageService, error) {
	client, err := minio.New(cfg.Minio_Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio_AccessKey, cfg.Minio_SecretKey, ""),
		Secure: cfg.Minio_UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối object storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Minio_Bucket)
	if err != nil {
		return nil, fmt.Errorf("không thể kiểm tra bucket %s: %w", cfg.Minio_Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio_Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("không thể tạo bucket %s: %w", cfg.Minio_Bucket, err)
		}
	}

	return &StorageService{client: client, bucket: cfg.Minio_Bucket}, nil
}

// UploadFile đẩy file lên storage và trả về đường dẫn truy cập.
// Tên object được gắn timestamp để tránh ghi đè file trùng tên.
func (s *StorageService) UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", common.ErrRequiredField
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("không thể upload file %s: %w", objectName, err)
	}

	return fmt.Sprintf("/%s/%s", s.bucket, objectName), nil
}
