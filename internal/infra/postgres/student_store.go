package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"concurseiro-challenge-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// StudentStore persists progress documents as JSONB, one row per student.
type StudentStore struct {
	pool *pgxpool.Pool
}

func NewStudentStore(pool *pgxpool.Pool) *StudentStore {
	return &StudentStore{pool: pool}
}

func (s *StudentStore) GetProgress(ctx context.Context, studentID string) (*domain.StudentProgress, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT progress FROM students WHERE id=$1`, studentID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load student progress: %w", err)
	}
	var progress domain.StudentProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		return nil, fmt.Errorf("unmarshal student progress: %w", err)
	}
	if progress.StudentID == "" {
		progress.StudentID = studentID
	}
	return &progress, nil
}

func (s *StudentStore) SaveProgress(ctx context.Context, progress *domain.StudentProgress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal student progress: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO students (id, progress) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET progress = EXCLUDED.progress`,
		progress.StudentID, raw)
	if err != nil {
		return fmt.Errorf("save student progress: %w", err)
	}
	return nil
}
