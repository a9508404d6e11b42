package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"onboarding/backend/pkg/models"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// DeleteAllSkinCancerRecords removes every row of the dataset.
func (s *PostgresStore) DeleteAllSkinCancerRecords(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM skin_cancer_data")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertSkinCancerRecords inserts a batch of records in one round trip.
// Records without an ID get one assigned.
func (s *PostgresStore) InsertSkinCancerRecords(ctx context.Context, records []*models.SkinCancerRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		batch.Queue(
			`INSERT INTO skin_cancer_data (id, data_type, cancer_group, year, sex, age_group, count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rec.ID, rec.DataType, rec.CancerGroup, rec.Year, rec.Sex, rec.AgeGroup, rec.Count,
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

// CountSkinCancerRecords returns the number of stored records.
func (s *PostgresStore) CountSkinCancerRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM skin_cancer_data").Scan(&count)
	return count, err
}

// ListSkinCancerRecords returns records matching filter, newest years first.
func (s *PostgresStore) ListSkinCancerRecords(ctx context.Context, filter SkinCancerFilter) ([]*models.SkinCancerRecord, error) {
	query := `SELECT id, data_type, cancer_group, year, sex, age_group, count, created_at, updated_at
		FROM skin_cancer_data`

	var conds []string
	var args []interface{}
	add := func(column, value string) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.DataType != "" {
		add("data_type", filter.DataType)
	}
	if filter.CancerGroup != "" {
		add("cancer_group", filter.CancerGroup)
	}
	if filter.Sex != "" {
		add("sex", filter.Sex)
	}
	if filter.AgeGroup != "" {
		add("age_group", filter.AgeGroup)
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY year DESC, age_group, sex LIMIT $%d", len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.SkinCancerRecord
	for rows.Next() {
		var rec models.SkinCancerRecord
		err := rows.Scan(
			&rec.ID, &rec.DataType, &rec.CancerGroup, &rec.Year,
			&rec.Sex, &rec.AgeGroup, &rec.Count, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
