package schools

import (
	"context"
	"fmt"
	"strings"

	"github.com/safetyedu/safety-edu/pkg/models"
)

// Lister fetches the school directory
type Lister interface {
	SchoolList(ctx context.Context) ([]models.School, error)
}

// LookupError is returned when no school has the requested id
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("school %s not found", e.ID)
}

// Resolver searches and resolves schools against the remote directory.
// The directory is fetched once per Resolver.
type Resolver struct {
	api     Lister
	schools []models.School
	loaded  bool
}

// NewResolver creates a resolver backed by api
func NewResolver(api Lister) *Resolver {
	return &Resolver{api: api}
}

// List returns the full directory
func (r *Resolver) List(ctx context.Context) ([]models.School, error) {
	if r.loaded {
		return r.schools, nil
	}
	schools, err := r.api.SchoolList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch school list: %w", err)
	}
	r.schools, r.loaded = schools, true
	return schools, nil
}

// Search returns every school whose name contains name, in directory order
func (r *Resolver) Search(ctx context.Context, name string) ([]models.School, error) {
	schools, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := []models.School{}
	for _, s := range schools {
		if strings.Contains(s.Name, name) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// Resolve returns the school whose id equals id
func (r *Resolver) Resolve(ctx context.Context, id string) (models.School, error) {
	schools, err := r.List(ctx)
	if err != nil {
		return models.School{}, err
	}
	for _, s := range schools {
		if s.ID == id {
			return s, nil
		}
	}
	return models.School{}, &LookupError{ID: id}
}
