package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/trackforge/internal/model"
)

// StudySessionRepo provides CRUD access to the study_session table.  It does
// not check ownership; callers compare the loaded record's owner with the
// acting user before mutating it.
type StudySessionRepo struct {
	db *sql.DB
}

// NewStudySessionRepo constructs a StudySessionRepo with the given DB handle.
func NewStudySessionRepo(db *sql.DB) *StudySessionRepo {
	return &StudySessionRepo{db: db}
}

const studySessionColumns = `id, COALESCE(user_id, 0), subject, COALESCE(hours, ''), COALESCE(dates, ''), notes`

func scanStudySession(row interface{ Scan(...any) error }, s *model.StudySession) error {
	return row.Scan(&s.ID, &s.UserID, &s.Subject, &s.Hours, &s.Dates, &s.Notes)
}

// Create inserts s and sets s.ID to the generated key.
func (r *StudySessionRepo) Create(ctx context.Context, s *model.StudySession) error {
	const q = `INSERT INTO study_session (user_id, subject, hours, dates, notes) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.UserID, s.Subject, s.Hours, s.Dates, s.Notes)
	if err != nil {
		return fmt.Errorf("insert study session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert study session: %w", err)
	}
	s.ID = uint64(id)
	return nil
}

// GetByID returns the session with the given id regardless of owner, or
// ErrRecordNotFound.
func (r *StudySessionRepo) GetByID(ctx context.Context, id uint64) (*model.StudySession, error) {
	q := `SELECT ` + studySessionColumns + ` FROM study_session WHERE id = ?`
	var s model.StudySession
	if err := scanStudySession(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get study session: %w", err)
	}
	return &s, nil
}

// ListByUser returns every session owned by userID in insertion order.
func (r *StudySessionRepo) ListByUser(ctx context.Context, userID uint64) ([]model.StudySession, error) {
	q := `SELECT ` + studySessionColumns + ` FROM study_session WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	defer rows.Close()

	out := []model.StudySession{}
	for rows.Next() {
		var s model.StudySession
		if err := scanStudySession(rows, &s); err != nil {
			return nil, fmt.Errorf("scan study session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	return out, nil
}

// Update overwrites every editable field of the row identified by s.ID.
// Concurrent updates are last-write-wins.
func (r *StudySessionRepo) Update(ctx context.Context, s *model.StudySession) error {
	const q = `UPDATE study_session SET subject = ?, hours = ?, dates = ?, notes = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, s.Subject, s.Hours, s.Dates, s.Notes, s.ID); err != nil {
		return fmt.Errorf("update study session: %w", err)
	}
	return nil
}

// Delete removes the session with the given id.  Deleting a missing id is not
// an error.
func (r *StudySessionRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_session WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete study session: %w", err)
	}
	return nil
}
