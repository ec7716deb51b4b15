package document

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockS3Client is a mock implementation of PutObjectAPI.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Archiver_Archive(t *testing.T) {
	client := new(MockS3Client)
	archiver := NewS3ArchiverWithClient(client, "wecare-docs", "documents/", zerolog.Nop())
	ctx := context.Background()

	d := New(Invoice, "Asha Rai")
	d.Number = "INV-4821"
	body := []byte("invoice text")

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		data, err := io.ReadAll(in.Body)
		return err == nil &&
			aws.ToString(in.Bucket) == "wecare-docs" &&
			aws.ToString(in.Key) == "documents/INV-4821_Asha_Rai.txt" &&
			in.Metadata["document-id"] == d.ID.String() &&
			in.Metadata["document-kind"] == "invoice" &&
			string(data) == "invoice text"
	})).Return(&s3.PutObjectOutput{}, nil)

	err := archiver.Archive(ctx, d, "INV-4821_Asha_Rai.txt", body)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestS3Archiver_ArchiveError(t *testing.T) {
	client := new(MockS3Client)
	archiver := NewS3ArchiverWithClient(client, "wecare-docs", "", zerolog.Nop())
	ctx := context.Background()

	client.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("no such bucket"))

	err := archiver.Archive(ctx, New(PurchaseForm, "Glow"), "PO-1234_Glow.txt", []byte("form"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=wecare-docs, key=PO-1234_Glow.txt")
	assert.Contains(t, err.Error(), "no such bucket")
}

func TestNopArchiver(t *testing.T) {
	assert.NoError(t, NewNopArchiver().Archive(context.Background(), New(Invoice, "x"), "x.txt", nil))
}
