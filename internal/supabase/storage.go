package supabase

import (
	"bytes"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadOriginal stores the full-resolution image under originals/. These
// objects are never served publicly; buyers receive them after purchase.
func (s *StorageClient) UploadOriginal(filename string, data []byte, contentType string) (string, error) {
	return s.upload("originals/"+filename, data, contentType)
}

// UploadWatermarked stores the watermarked preview under watermarked/.
// This is the version galleries render before purchase.
func (s *StorageClient) UploadWatermarked(filename string, data []byte, contentType string) (string, error) {
	return s.upload("watermarked/"+filename, data, contentType)
}

func (s *StorageClient) upload(storagePath string, data []byte, contentType string) (string, error) {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

func (s *StorageClient) DownloadFile(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}
