package storage

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/knight-arena/internal/platform/logging"
	"github.com/riskibarqy/knight-arena/internal/platform/resilience"
)

var errStorageTransient = crerr.New("object storage transient failure")

type S3Config struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string
	DisableSSL     bool
	CircuitBreaker resilience.CircuitBreakerConfig
}

type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Storage uploads knight artwork to an S3 compatible bucket behind a
// circuit breaker.
type S3Storage struct {
	uploader uploader
	cfg      S3Config
	breaker  *resilience.CircuitBreaker
	logger   *logging.Logger
}

func NewS3Storage(cfg S3Config, logger *logging.Logger) (*S3Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, crerr.New("storage bucket is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.DisableSSL),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, crerr.Wrap(err, "create aws session")
	}

	return newS3Storage(s3manager.NewUploader(sess), cfg, logger), nil
}

func newS3Storage(up uploader, cfg S3Config, logger *logging.Logger) *S3Storage {
	return &S3Storage{
		uploader: up,
		cfg:      cfg,
		breaker:  resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:   logger,
	}
}

// Upload stores body under key and returns the public URL of the object.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", crerr.New("object key is required")
	}

	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket:      aws.String(s.cfg.Bucket),
			Key:         aws.String(key),
			Body:        body,
			ACL:         aws.String("public-read"),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return classifyUploadError(err)
		}
		return nil
	}, isTransient)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			s.logger.WarnContext(ctx, "storage circuit breaker rejected upload", "state", s.breaker.State(), "key", key)
		}
		return "", crerr.Wrapf(err, "upload object bucket=%s key=%s size=%d", s.cfg.Bucket, key, size)
	}

	return s.PublicURL(key), nil
}

// PublicURL joins the configured base URL (or endpoint/bucket) with key.
func (s *S3Storage) PublicURL(key string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket
	}
	return base + "/" + strings.TrimLeft(key, "/")
}

func classifyUploadError(err error) error {
	var aerr awserr.Error
	if crerr.As(err, &aerr) {
		switch aerr.Code() {
		case "AccessDenied", "NoSuchBucket", "InvalidAccessKeyId", "SignatureDoesNotMatch", request.CanceledErrorCode:
			return err
		}
	}
	return crerr.Mark(err, errStorageTransient)
}

func isTransient(err error) bool {
	return crerr.Is(err, errStorageTransient)
}
