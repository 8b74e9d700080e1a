package service

import (
	"context"
	"fmt"
	"io"
)

// fakeStorage records uploads and deletes in memory for service tests.
type fakeStorage struct {
	uploads    int
	deleted    []string
	failUpload bool
}

func (f *fakeStorage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, string, error) {
	if f.failUpload {
		return "", "", fmt.Errorf("upload rejected")
	}
	f.uploads++
	key := fmt.Sprintf("%s/%d-%s", folder, f.uploads, filename)
	return "https://cdn.example.com/" + key, key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}
