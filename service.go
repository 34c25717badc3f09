package notegate

import (
	"context"
	"fmt"
	"strings"
)

// ObjectStore defines the operations the gateway needs from the bucket.
// Implementations must translate backend-specific "key absent" conditions
// into ErrNotFound (Get, Delete) or the found flag (Head), and conditional
// write conflicts into ErrConflict (PutIfAbsent). See the storage package
// for the S3 implementation.
type ObjectStore interface {
	// List returns every key in the bucket, across all pages.
	List(ctx context.Context) ([]string, error)

	// Get returns the object bytes, or ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes the object unconditionally.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// PutIfAbsent writes the object only when the key does not exist yet,
	// returning ErrConflict otherwise.
	PutIfAbsent(ctx context.Context, key string, data []byte, contentType string) error

	// Head reports whether the key exists, with its metadata when found.
	// The bool result is the existence check; an error means the check
	// itself could not be performed.
	Head(ctx context.Context, key string) (ObjectInfo, bool, error)

	// Delete removes the key. Deleting an absent key is not an error at
	// the store level; callers gate deletes behind Head.
	Delete(ctx context.Context, key string) error
}

const jsonContentType = "application/json"

// Service implements the gateway operations on top of an ObjectStore.
type Service struct {
	store ObjectStore
}

// NewService creates a Service backed by the given store.
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// ListNotes returns every key in the bucket, unfiltered.
func (s *Service) ListNotes(ctx context.Context) ([]string, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// ReadNote fetches a note by key, decoding the body as UTF-8 text.
func (s *Service) ReadNote(ctx context.Context, filename string) (Note, error) {
	if err := validateKey(filename); err != nil {
		return Note{}, err
	}

	data, err := s.store.Get(ctx, filename)
	if err != nil {
		return Note{}, fmt.Errorf("read note %q: %w", filename, err)
	}

	return Note{Filename: filename, Content: string(data)}, nil
}

// WriteNote stores a note, overwriting any existing object at the key.
func (s *Service) WriteNote(ctx context.Context, filename, content string) error {
	if err := validateKey(filename); err != nil {
		return err
	}

	if err := s.store.Put(ctx, filename, []byte(content), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("write note %q: %w", filename, err)
	}
	return nil
}

// ListCanvases returns the keys ending in the canvas suffix, excluding
// plain notes.
func (s *Service) ListCanvases(ctx context.Context) ([]string, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list canvases: %w", err)
	}

	canvases := []string{}
	for _, k := range keys {
		if strings.HasSuffix(k, CanvasSuffix) {
			canvases = append(canvases, k)
		}
	}
	return canvases, nil
}

// GetCanvas fetches a canvas by name, normalizing the key suffix. The
// stored bytes are parsed as JSON with a raw-string fallback, and the
// last-modified time comes from a head call.
func (s *Service) GetCanvas(ctx context.Context, name string) (CanvasDocument, error) {
	key, err := canvasKey(name)
	if err != nil {
		return CanvasDocument{}, err
	}

	data, err := s.store.Get(ctx, key)
	if err != nil {
		return CanvasDocument{}, fmt.Errorf("get canvas %q: %w", key, err)
	}

	doc := CanvasDocument{
		Name:    key,
		Content: DecodeCanvasValue(data),
	}

	info, found, err := s.store.Head(ctx, key)
	if err != nil {
		return CanvasDocument{}, fmt.Errorf("get canvas %q: %w", key, err)
	}
	if found {
		doc.LastModified = info.LastModified
	}

	return doc, nil
}

// CreateCanvas stores a new canvas. An existing key returns ErrConflict:
// a head check catches it up front, and the write itself is conditional
// on the key not existing, which also covers backends where two creates
// race. Returns the normalized key.
func (s *Service) CreateCanvas(ctx context.Context, name string, content CanvasContent) (string, error) {
	key, err := canvasKey(name)
	if err != nil {
		return "", err
	}

	data, err := content.Encode()
	if err != nil {
		return "", err
	}

	_, found, err := s.store.Head(ctx, key)
	if err != nil {
		return "", fmt.Errorf("create canvas %q: %w", key, err)
	}
	if found {
		return "", fmt.Errorf("create canvas %q: %w", key, ErrConflict)
	}

	if err := s.store.PutIfAbsent(ctx, key, data, jsonContentType); err != nil {
		return "", fmt.Errorf("create canvas %q: %w", key, err)
	}
	return key, nil
}

// UpdateCanvas overwrites an existing canvas. Returns ErrNotFound when the
// key was never created; no write is issued in that case.
func (s *Service) UpdateCanvas(ctx context.Context, name string, content CanvasContent) (string, error) {
	key, err := canvasKey(name)
	if err != nil {
		return "", err
	}

	data, err := content.Encode()
	if err != nil {
		return "", err
	}

	_, found, err := s.store.Head(ctx, key)
	if err != nil {
		return "", fmt.Errorf("update canvas %q: %w", key, err)
	}
	if !found {
		return "", fmt.Errorf("update canvas %q: %w", key, ErrNotFound)
	}

	if err := s.store.Put(ctx, key, data, jsonContentType); err != nil {
		return "", fmt.Errorf("update canvas %q: %w", key, err)
	}
	return key, nil
}

// DeleteCanvas removes an existing canvas. Returns ErrNotFound when the
// key is absent; no delete is issued in that case.
func (s *Service) DeleteCanvas(ctx context.Context, name string) (string, error) {
	key, err := canvasKey(name)
	if err != nil {
		return "", err
	}

	_, found, err := s.store.Head(ctx, key)
	if err != nil {
		return "", fmt.Errorf("delete canvas %q: %w", key, err)
	}
	if !found {
		return "", fmt.Errorf("delete canvas %q: %w", key, ErrNotFound)
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return "", fmt.Errorf("delete canvas %q: %w", key, err)
	}
	return key, nil
}

func validateKey(key string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("invalid key %q: %w", key, ErrInvalidInput)
	}
	return nil
}

func canvasKey(name string) (string, error) {
	key := NormalizeCanvasKey(name)
	if err := validateKey(key); err != nil {
		return "", err
	}
	return key, nil
}
