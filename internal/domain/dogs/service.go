package dogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxImageCount es el máximo de imágenes que se pueden pedir en una sola llamada.
const MaxImageCount = 50

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidCount = fmt.Errorf("%w: count must be between 0 and %d", ErrInvalidInput, MaxImageCount)
	ErrUpstream     = errors.New("upstream failure")
)

// Catalog es el puerto hacia el servicio externo de razas/imágenes.
// Todas las operaciones devuelven listas ya normalizadas.
type Catalog interface {
	ListBreeds(ctx context.Context) ([]string, error)
	ListSubBreeds(ctx context.Context, breed string) ([]string, error)
	RandomImages(ctx context.Context, count int) ([]string, error)
	BreedImages(ctx context.Context, breed string) ([]string, error)
	RandomBreedImages(ctx context.Context, breed string, count int) ([]string, error)
}

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// ValidateCount se aplica antes de cualquier llamada upstream.
func ValidateCount(count int) error {
	if count < 0 || count > MaxImageCount {
		return ErrInvalidCount
	}
	return nil
}

func (s *Service) Breeds(ctx context.Context) ([]string, error) {
	return result(s.catalog.ListBreeds(ctx))
}

func (s *Service) SubBreeds(ctx context.Context, breed string) ([]string, error) {
	breed, err := normalizeBreed(breed)
	if err != nil {
		return nil, err
	}
	return result(s.catalog.ListSubBreeds(ctx, breed))
}

func (s *Service) RandomImages(ctx context.Context, count int) ([]string, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}
	return result(s.catalog.RandomImages(ctx, count))
}

func (s *Service) BreedImages(ctx context.Context, breed string) ([]string, error) {
	breed, err := normalizeBreed(breed)
	if err != nil {
		return nil, err
	}
	return result(s.catalog.BreedImages(ctx, breed))
}

func (s *Service) RandomBreedImages(ctx context.Context, breed string, count int) ([]string, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}
	breed, err := normalizeBreed(breed)
	if err != nil {
		return nil, err
	}
	return result(s.catalog.RandomBreedImages(ctx, breed, count))
}

func normalizeBreed(breed string) (string, error) {
	breed = strings.ToLower(strings.TrimSpace(breed))
	if breed == "" {
		return "", fmt.Errorf("%w: breed required", ErrInvalidInput)
	}
	return breed, nil
}

// result envuelve errores del catálogo como ErrUpstream y nunca devuelve lista nil.
func result(items []string, err error) ([]string, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
