package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of the S3 client the bucket reader needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// R2Bucket reads objects from a Cloudflare R2 (S3-compatible) bucket.
type R2Bucket struct {
	client ObjectAPI
	bucket string
}

// NewR2Bucket initializes the R2 client using static credentials and custom endpoint.
func NewR2Bucket(accessKey, secretKey, accountID, bucketName, region string) *R2Bucket {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		Region:      region,
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Bucket{client: client, bucket: bucketName}
}

// NewR2BucketWithClient is used by tests to plug a fake client.
func NewR2BucketWithClient(client ObjectAPI, bucketName string) *R2Bucket {
	return &R2Bucket{client: client, bucket: bucketName}
}

// Fetch downloads the object body. A missing key yields ErrNotFound.
func (b *R2Bucket) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		var nf *s3types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
