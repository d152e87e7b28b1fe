package s3

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

type Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// VideoUpload is a presigned PUT target. Key is what the course stores as
// its video reference once the client has uploaded.
type VideoUpload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UploadPresigner interface {
	PresignVideoUpload(ctx context.Context, filename, contentType string) (*VideoUpload, error)
}

type FilePresigner struct {
	S3PresignClient *s3.PresignClient
	BucketName      string
}

func NewFilePresigner(ctx context.Context, opts Options) (*FilePresigner, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &FilePresigner{
		S3PresignClient: s3.NewPresignClient(s3Client),
		BucketName:      opts.Bucket,
	}, nil
}

func (p *FilePresigner) PresignVideoUpload(ctx context.Context, filename, contentType string) (*VideoUpload, error) {
	key := VideoObjectKey(filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.BucketName),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	request, err := p.S3PresignClient.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLTTL
	})
	if err != nil {
		return nil, err
	}

	return &VideoUpload{URL: request.URL, Key: key, ExpiresAt: time.Now().Add(uploadURLTTL).UTC()}, nil
}

// VideoObjectKey places every upload under videos/ with a random name that
// keeps the original extension.
func VideoObjectKey(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	return "videos/" + uuid.NewString() + ext
}
