package widgets

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	failOn string
	calls  atomic.Int32
}

func (f *fakeUploader) Upload(_ context.Context, name string, _ []byte) (string, error) {
	f.calls.Add(1)
	if name == f.failOn {
		return "", errors.New("host refused")
	}
	return "https://img.example.com/" + name, nil
}

func TestImageList_Add(t *testing.T) {
	tests := []struct {
		name    string
		start   []string
		input   string
		wantErr error
		wantLen int
	}{
		{"valid url", nil, "https://cdn.example.com/a.png", nil, 1},
		{"trims whitespace", nil, "  https://cdn.example.com/a.png ", nil, 1},
		{"not a url", nil, "not a url", ErrInvalidURL, 0},
		{"missing host", nil, "https://", ErrInvalidURL, 0},
		{"empty is ignored", []string{"https://a.example.com/1.png"}, "", nil, 1},
		{"blank is ignored", nil, "   ", nil, 0},
		{
			"blank at capacity is ignored",
			[]string{"https://a/1", "https://a/2", "https://a/3", "https://a/4", "https://a/5"},
			" ", nil, 5,
		},
		{
			"at capacity",
			[]string{"https://a/1", "https://a/2", "https://a/3", "https://a/4", "https://a/5"},
			"https://a/6", ErrCapacity, 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewImageList(5, tt.start...)
			before := l.URLs()
			err := l.Add(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, l.URLs())
			} else {
				assert.NoError(t, err)
			}
			if tt.wantLen == len(before) {
				assert.Equal(t, before, l.URLs())
			}
			assert.Equal(t, tt.wantLen, l.Len())
		})
	}
}

func TestImageList_Remove(t *testing.T) {
	l := NewImageList(5, "https://a/0", "https://a/1", "https://a/2", "https://a/3")

	l.Remove(1)
	assert.Equal(t, []string{"https://a/0", "https://a/2", "https://a/3"}, l.URLs())

	l.Remove(0)
	assert.Equal(t, "https://a/2", l.Primary())

	l.Remove(7)
	l.Remove(-1)
	assert.Equal(t, 2, l.Len())
}

func TestImageList_Primary(t *testing.T) {
	assert.Equal(t, PlaceholderImage, NewImageList(5).Primary())
	assert.Equal(t, "https://a/0", NewImageList(5, "https://a/0", "https://a/1").Primary())
}

func TestImageList_UploadAppendsInOrder(t *testing.T) {
	l := NewImageList(5, "https://a/0")
	up := &fakeUploader{}

	files := []File{{Name: "one.png"}, {Name: "two.png"}, {Name: "three.png"}}
	require.NoError(t, l.Upload(context.Background(), up, files))

	assert.Equal(t, []string{
		"https://a/0",
		"https://img.example.com/one.png",
		"https://img.example.com/two.png",
		"https://img.example.com/three.png",
	}, l.URLs())
	assert.False(t, l.Uploading())
}

func TestImageList_UploadIsAllOrNothing(t *testing.T) {
	l := NewImageList(5)
	up := &fakeUploader{failOn: "bad.png"}

	err := l.Upload(context.Background(), up, []File{{Name: "ok.png"}, {Name: "bad.png"}})
	require.Error(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "Failed to upload images. Please use image URLs instead.", l.Message(err))
}

func TestImageList_UploadRejectsOverCapacity(t *testing.T) {
	l := NewImageList(2, "https://a/0")
	up := &fakeUploader{}

	err := l.Upload(context.Background(), up, []File{{Name: "a.png"}, {Name: "b.png"}})
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, int32(0), up.calls.Load())
	assert.Equal(t, "Maximum 2 images allowed", l.Message(err))
}

func TestImageList_NewCapsInitialURLs(t *testing.T) {
	urls := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		urls = append(urls, fmt.Sprintf("https://a/%d", i))
	}
	l := NewImageList(0, urls...)
	assert.Equal(t, DefaultMaxImages, l.Len())
	assert.True(t, l.Full())
	assert.Equal(t, 0, l.Remaining())
}
