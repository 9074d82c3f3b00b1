// Package store persists scan history in Postgres.
package store

import (
	"context"
	"database/sql"
	"time"
)

var ErrNotFound = sql.ErrNoRows

type ScanRepo struct{ DB *sql.DB }

func NewScanRepo(db *sql.DB) *ScanRepo { return &ScanRepo{DB: db} }

// Scan is one recorded recognition run.
type Scan struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	ImageURL       string    `json:"image_url"`
	RecognizedText string    `json:"recognized_text"`
	CropCount      int       `json:"crop_count"`
	Engine         string    `json:"engine"`
}

// Init creates the scans table when it does not exist yet.
func (r *ScanRepo) Init(ctx context.Context) error {
	const q = `
create table if not exists label_scans (
  id bigserial primary key,
  created_at timestamptz not null default now(),
  image_url text not null,
  recognized_text text not null,
  crop_count int not null,
  engine text not null
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *ScanRepo) Insert(ctx context.Context, s Scan) error {
	const q = `
insert into label_scans (image_url, recognized_text, crop_count, engine)
values ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, q, s.ImageURL, s.RecognizedText, s.CropCount, s.Engine)
	return err
}

// Recent returns the latest scans, newest first.
func (r *ScanRepo) Recent(ctx context.Context, limit int) ([]Scan, error) {
	const q = `
select id, created_at, image_url, recognized_text, crop_count, engine
from label_scans
order by created_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var s Scan
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.ImageURL, &s.RecognizedText, &s.CropCount, &s.Engine); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// PurgeOlderThan trims old history so the table does not grow unbounded.
func (r *ScanRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from label_scans where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
