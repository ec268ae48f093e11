package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/trackforge/internal/model"
)

// ApplicationRepo provides CRUD access to the application table.
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `id, COALESCE(user_id, 0), COALESCE(company_name, ''), COALESCE(role, ''), COALESCE(status, '')`

func scanApplication(row interface{ Scan(...any) error }, a *model.Application) error {
	return row.Scan(&a.ID, &a.UserID, &a.CompanyName, &a.Role, &a.Status)
}

// Create inserts a and sets a.ID.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO application (user_id, company_name, role, status) VALUES (?, ?, ?, ?)`,
		a.UserID, a.CompanyName, a.Role, a.Status)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	a.ID = uint64(id)
	return nil
}

// GetByID returns ErrRecordNotFound when no application has the id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (*model.Application, error) {
	var a model.Application
	err := scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM application WHERE id = ?`, id), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &a, nil
}

func (r *ApplicationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM application WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := []model.Application{}
	for rows.Next() {
		var a model.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ApplicationRepo) Update(ctx context.Context, a *model.Application) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE application SET company_name = ?, role = ?, status = ? WHERE id = ?`,
		a.CompanyName, a.Role, a.Status, a.ID)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM application WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}
