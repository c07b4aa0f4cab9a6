package ports

import (
	"context"
	"poi-map-service/internal/domain"
)

// Port: a boundary for loading points of interest from a data source.
type POIRepository interface {
	// Retrieve every point of interest in load order.
	ListPOIs(ctx context.Context) ([]*domain.PointOfInterest, error)
	// Retrieve the categories points can be filtered by.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
