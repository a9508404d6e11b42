package models

import (
	"time"
)

// SkinCancerRecord is one row of the national skin cancer statistics
// dataset: case or mortality counts broken down by cancer group, year, sex
// and age group.
type SkinCancerRecord struct {
	ID          string    `json:"id"`
	DataType    string    `json:"data_type"`
	CancerGroup string    `json:"cancer_group"`
	Year        int       `json:"year"`
	Sex         string    `json:"sex"`
	AgeGroup    string    `json:"age_group"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
