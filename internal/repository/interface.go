package repository

import (
	"context"

	"onboarding/backend/pkg/models"
)

// SkinCancerFilter narrows skin cancer statistics queries. Zero values mean
// "any".
type SkinCancerFilter struct {
	DataType    string
	CancerGroup string
	Year        int
	Sex         string
	AgeGroup    string
	Limit       int
}

// Store is the persistence interface used by the importer and the API.
type Store interface {
	// Ping verifies the database connection.
	Ping(ctx context.Context) error
	// DeleteAllSkinCancerRecords removes every row of the dataset and
	// returns how many were deleted.
	DeleteAllSkinCancerRecords(ctx context.Context) (int64, error)
	// InsertSkinCancerRecords inserts a batch of records.
	InsertSkinCancerRecords(ctx context.Context, records []*models.SkinCancerRecord) error
	// CountSkinCancerRecords returns the number of stored records.
	CountSkinCancerRecords(ctx context.Context) (int64, error)
	// ListSkinCancerRecords returns records matching filter.
	ListSkinCancerRecords(ctx context.Context, filter SkinCancerFilter) ([]*models.SkinCancerRecord, error)
}
