package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/internal/service"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3ImageStore_Upload(t *testing.T) {
	fake := &fakeS3{}
	store := service.NewS3ImageStoreFromClient(fake, "food-bucket", time.Second)
	userID := uuid.New()
	png := []byte("\x89PNG\r\n\x1a\n0000")

	url, err := store.Upload(context.Background(), userID, png, "Lunch.PNG")
	require.NoError(t, err)

	key := aws.ToString(fake.input.Key)
	assert.Equal(t, "food-bucket", aws.ToString(fake.input.Bucket))
	assert.True(t, strings.HasPrefix(key, "food-images/"+userID.String()+"/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, png, fake.body)
	assert.Equal(t, "https://food-bucket.s3.amazonaws.com/"+key, url)
}

func TestS3ImageStore_UnknownExtension(t *testing.T) {
	fake := &fakeS3{}
	_, err := service.NewS3ImageStoreFromClient(fake, "b", time.Second).Upload(context.Background(), uuid.New(), []byte("x"), "photo.bmp")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(aws.ToString(fake.input.Key), ".jpg"))
}

func TestS3ImageStore_Error(t *testing.T) {
	fake := &fakeS3{err: errors.New("denied")}
	_, err := service.NewS3ImageStoreFromClient(fake, "b", time.Second).Upload(context.Background(), uuid.New(), []byte("x"), "a.jpg")
	assert.ErrorContains(t, err, "failed to upload to S3")
}
