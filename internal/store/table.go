package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobfinder-engine/internal/domain"
)

// tsLayout is fixed width so submitted_at sorts correctly as text.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Migrate brings the schema to the current user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  job_id TEXT NOT NULL,
  job_title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  cover_letter TEXT NOT NULL DEFAULT '',
  resume_url TEXT NOT NULL DEFAULT '',
  from_screen TEXT NOT NULL DEFAULT '',
  submitted_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_applications_submitted_at
ON applications(submitted_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func InsertApplication(ctx context.Context, db *sql.DB, a domain.Application) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO applications(id, job_id, job_title, company, name, email, phone, cover_letter, resume_url, from_screen, submitted_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?);`,
		a.ID, a.JobID, a.JobTitle, a.Company, a.Name, a.Email, a.Phone,
		a.CoverLetter, a.ResumeURL, a.FromScreen,
		a.SubmittedAt.UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// ListApplications returns the most recent submissions first.
func ListApplications(ctx context.Context, db *sql.DB, limit int) ([]domain.Application, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, job_id, job_title, company, name, email, phone, cover_letter, resume_url, from_screen, submitted_at
FROM applications
ORDER BY submitted_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		var a domain.Application
		var at string
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.Company, &a.Name, &a.Email,
			&a.Phone, &a.CoverLetter, &a.ResumeURL, &a.FromScreen, &at); err != nil {
			return nil, err
		}
		a.SubmittedAt, _ = time.Parse(tsLayout, at)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
