//go:build unit || integration
// +build unit integration

package connector

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// TestBucket is the bucket name used with FakeS3Client
const TestBucket = "carelink-test-documents"

// TestSender is the sender address used with FakeSESClient
const TestSender = "no-reply@carelink.test"

// FakeS3Client keeps objects in memory
type FakeS3Client struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

// NewFakeS3Client creates an empty FakeS3Client
func NewFakeS3Client() *FakeS3Client {
	return &FakeS3Client{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (f *FakeS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	content, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.Objects[key] = content
	f.Types[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *FakeS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.Objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(content))}, nil
}

func (f *FakeS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Objects, aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// FakeSESClient records every SendEmail call
type FakeSESClient struct {
	Inputs []*ses.SendEmailInput
	Err    error
}

func (f *FakeSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.Inputs = append(f.Inputs, params)
	return &ses.SendEmailOutput{MessageId: aws.String("test-message-id")}, nil
}

// RecordingMailer keeps sent mails in memory
type RecordingMailer struct {
	mu   sync.Mutex
	sent []notifications.Email
}

// NewRecordingMailer creates an empty RecordingMailer
func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{}
}

func (m *RecordingMailer) Send(ctx context.Context, email *notifications.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *email)
	return nil
}

// Sent returns a copy of the recorded mails
func (m *RecordingMailer) Sent() []notifications.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifications.Email(nil), m.sent...)
}
