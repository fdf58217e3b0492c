package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/platform/logging"
	"github.com/riskibarqy/knight-arena/internal/platform/resilience"
)

type fakeUploader struct {
	calls int
	err   error
	last  *s3manager.UploadInput
	body  string
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.calls++
	f.last = input
	if input.Body != nil {
		raw, _ := io.ReadAll(input.Body)
		f.body = string(raw)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3manager.UploadOutput{}, nil
}

func TestS3StorageUploadReturnsPublicURL(t *testing.T) {
	up := &fakeUploader{}
	s := newS3Storage(up, S3Config{Bucket: "art", PublicBaseURL: "https://cdn.example.com/"}, logging.NewNop())

	url, err := s.Upload(context.Background(), "/knights/k1/a.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/knights/k1/a.png", url)
	require.Equal(t, "knights/k1/a.png", aws.StringValue(up.last.Key))
	require.Equal(t, "image/png", aws.StringValue(up.last.ContentType))
	require.Equal(t, "png", up.body)
}

func TestS3StoragePublicURLFallsBackToEndpoint(t *testing.T) {
	s := newS3Storage(&fakeUploader{}, S3Config{Bucket: "art", Endpoint: "http://minio:9000/"}, logging.NewNop())
	require.Equal(t, "http://minio:9000/art/x.png", s.PublicURL("x.png"))
}

func TestS3StorageOpensBreakerOnTransientFailures(t *testing.T) {
	up := &fakeUploader{err: errors.New("connection reset")}
	s := newS3Storage(up, S3Config{
		Bucket: "art",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		_, err := s.Upload(context.Background(), "k", "image/png", strings.NewReader(""), 0)
		require.Error(t, err)
	}

	_, err := s.Upload(context.Background(), "k", "image/png", strings.NewReader(""), 0)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.Equal(t, 2, up.calls)
}

func TestS3StoragePermanentErrorsDoNotTripBreaker(t *testing.T) {
	up := &fakeUploader{err: awserr.New("AccessDenied", "denied", nil)}
	s := newS3Storage(up, S3Config{
		Bucket: "art",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
		},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		_, err := s.Upload(context.Background(), "k", "image/png", strings.NewReader(""), 0)
		require.Error(t, err)
		require.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}
	require.Equal(t, 3, up.calls)
}

func TestS3StorageRejectsEmptyKey(t *testing.T) {
	up := &fakeUploader{}
	s := newS3Storage(up, S3Config{Bucket: "art"}, logging.NewNop())

	_, err := s.Upload(context.Background(), " / ", "image/png", strings.NewReader(""), 0)
	require.Error(t, err)
	require.Zero(t, up.calls)
}
