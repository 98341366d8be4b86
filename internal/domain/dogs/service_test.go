package dogs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fake catalog
// -------------------------

type fakeCatalog struct {
	mu    sync.Mutex
	calls []string

	breeds    map[string][]string
	images    map[string][]string
	randomErr error
	err       error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		breeds: map[string][]string{
			"hound": {"afghan", "basset"},
			"pug":   {},
		},
		images: map[string][]string{
			"hound": {"h1.jpg", "h2.jpg"},
			"pug":   {},
		},
	}
}

func (f *fakeCatalog) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCatalog) ListBreeds(ctx context.Context) ([]string, error) {
	f.record("ListBreeds")
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, len(f.breeds))
	for k := range f.breeds {
		out = append(out, k)
	}
	return out, nil
}

func (f *fakeCatalog) ListSubBreeds(ctx context.Context, breed string) ([]string, error) {
	f.record("ListSubBreeds")
	if f.err != nil {
		return nil, f.err
	}
	subs, ok := f.breeds[breed]
	if !ok {
		return []string{}, nil
	}
	return subs, nil
}

func (f *fakeCatalog) RandomImages(ctx context.Context, count int) ([]string, error) {
	f.record("RandomImages")
	if f.randomErr != nil {
		return nil, f.randomErr
	}
	if count == 0 {
		return []string{"single.jpg"}, nil
	}
	out := make([]string, count)
	for i := range out {
		out[i] = "img.jpg"
	}
	return out, nil
}

func (f *fakeCatalog) BreedImages(ctx context.Context, breed string) ([]string, error) {
	f.record("BreedImages")
	if f.err != nil {
		return nil, f.err
	}
	return f.images[breed], nil
}

func (f *fakeCatalog) RandomBreedImages(ctx context.Context, breed string, count int) ([]string, error) {
	f.record("RandomBreedImages")
	if f.err != nil {
		return nil, f.err
	}
	if count == 0 {
		return []string{breed + ".jpg"}, nil
	}
	out := make([]string, count)
	for i := range out {
		out[i] = breed + ".jpg"
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_SubBreeds_KnownAndUnknown(t *testing.T) {
	svc := NewService(newFakeCatalog())

	got, err := svc.SubBreeds(context.Background(), "hound")
	require.NoError(t, err)
	assert.Equal(t, []string{"afghan", "basset"}, got)

	got, err = svc.SubBreeds(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestService_SubBreeds_NormalizesBreed(t *testing.T) {
	svc := NewService(newFakeCatalog())

	got, err := svc.SubBreeds(context.Background(), "  Hound ")
	require.NoError(t, err)
	assert.Equal(t, []string{"afghan", "basset"}, got)

	_, err = svc.SubBreeds(context.Background(), " ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestService_RandomImages_CountSemantics(t *testing.T) {
	svc := NewService(newFakeCatalog())

	one, err := svc.RandomImages(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	for _, n := range []int{1, 7, MaxImageCount} {
		got, err := svc.RandomImages(context.Background(), n)
		require.NoError(t, err)
		assert.Len(t, got, n)
	}
}

func TestService_RandomImages_RejectsOutOfRangeBeforeUpstream(t *testing.T) {
	cat := newFakeCatalog()
	svc := NewService(cat)

	for _, n := range []int{MaxImageCount + 1, 1000, -1} {
		_, err := svc.RandomImages(context.Background(), n)
		assert.True(t, errors.Is(err, ErrInvalidCount), "count=%d", n)
		assert.True(t, errors.Is(err, ErrInvalidInput), "count=%d", n)

		_, err = svc.RandomBreedImages(context.Background(), "hound", n)
		assert.True(t, errors.Is(err, ErrInvalidCount), "count=%d", n)
	}
	assert.Equal(t, 0, cat.callCount())
}

func TestService_WrapsCatalogErrorsAsUpstream(t *testing.T) {
	cat := newFakeCatalog()
	cause := errors.New("connection refused")
	cat.err = cause
	cat.randomErr = cause
	svc := NewService(cat)

	_, err := svc.Breeds(context.Background())
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, cause))

	_, err = svc.BreedImages(context.Background(), "hound")
	assert.True(t, errors.Is(err, ErrUpstream))

	_, err = svc.RandomImages(context.Background(), 2)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestService_BreedImages_NilBecomesEmpty(t *testing.T) {
	svc := NewService(newFakeCatalog())

	got, err := svc.BreedImages(context.Background(), "unknown")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
