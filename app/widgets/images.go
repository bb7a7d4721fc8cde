package widgets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxImages = 5
	PlaceholderImage = "/static/img/placeholder.svg"
)

var (
	ErrCapacity   = errors.New("image limit reached")
	ErrInvalidURL = errors.New("invalid image URL")
	ErrNoFiles    = errors.New("no files selected")
)

// Uploader stores one file on an image host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type File struct {
	Name string
	Data []byte
}

// ImageList is the ordered set of image URLs attached to a product. The first
// entry is the primary image.
type ImageList struct {
	mu        sync.Mutex
	urls      []string
	max       int
	uploading bool
}

func NewImageList(max int, urls ...string) *ImageList {
	if max <= 0 {
		max = DefaultMaxImages
	}
	l := &ImageList{max: max}
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" && len(l.urls) < max {
			l.urls = append(l.urls, u)
		}
	}
	return l
}

func (l *ImageList) URLs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.urls...)
}

func (l *ImageList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.urls)
}

func (l *ImageList) Max() int { return l.max }

func (l *ImageList) Full() bool { return l.Len() >= l.max }

func (l *ImageList) Remaining() int { return l.max - l.Len() }

func (l *ImageList) Uploading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.uploading
}

// Primary returns the cover image, or the placeholder when there is none.
func (l *ImageList) Primary() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.urls) == 0 {
		return PlaceholderImage
	}
	return l.urls[0]
}

// CapacityMessage is the notification shown when the list is full.
func (l *ImageList) CapacityMessage() string {
	return fmt.Sprintf("Maximum %d images allowed", l.max)
}

// Add appends a pasted URL. A blank input is ignored.
func (l *ImageList) Add(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.urls) >= l.max {
		return ErrCapacity
	}
	if !validURL(raw) {
		return ErrInvalidURL
	}
	l.urls = append(l.urls, raw)
	return nil
}

// Remove drops the image at index i. Out of range indexes are ignored.
func (l *ImageList) Remove(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.urls) {
		return
	}
	l.urls = append(l.urls[:i], l.urls[i+1:]...)
}

// Upload sends every file to the uploader concurrently. Either all resulting
// URLs are appended in file order, or none are.
func (l *ImageList) Upload(ctx context.Context, up Uploader, files []File) error {
	if len(files) == 0 {
		return ErrNoFiles
	}

	l.mu.Lock()
	if len(l.urls)+len(files) > l.max {
		l.mu.Unlock()
		return ErrCapacity
	}
	l.uploading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.uploading = false
		l.mu.Unlock()
	}()

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			u, err := up.Upload(gctx, f.Name, f.Data)
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Name, err)
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.urls)+len(urls) > l.max {
		return ErrCapacity
	}
	l.urls = append(l.urls, urls...)
	return nil
}

// Message maps a widget error to the text shown to the user.
func (l *ImageList) Message(err error) string {
	switch {
	case errors.Is(err, ErrCapacity):
		return l.CapacityMessage()
	case errors.Is(err, ErrInvalidURL):
		return "Please enter a valid URL"
	case errors.Is(err, ErrNoFiles):
		return "Please choose at least one image"
	default:
		return "Failed to upload images. Please use image URLs instead."
	}
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
