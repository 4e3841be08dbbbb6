package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	s3c "payout_dashboard/internal/config/connections/s3"
)

// S3Archiver keeps the raw bytes of every accepted upload so a batch
// can be traced back to the exact file that produced it.
type S3Archiver struct {
	s3 *s3c.S3
}

func NewS3Archiver(s *s3c.S3) *S3Archiver { return &S3Archiver{s3: s} }

func (a *S3Archiver) Archive(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("uploads/%d-%s", time.Now().UnixNano(), path.Base(name))

	_, err := a.s3.Client.PutObject(ctx, a.s3.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	s3path := fmt.Sprintf("s3://%s/%s", a.s3.Bucket, key)
	log.Printf("[ARCHIVE][OK] %s size=%d", s3path, len(data))
	return s3path, nil
}
