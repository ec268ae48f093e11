package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/trackforge/internal/model"
	"github.com/iliyamo/trackforge/internal/utils"
)

// UserRepo reads and writes the `user` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Exists reports whether at least one user is registered under username.
// Usernames are not unique at the storage level; registration relies on this
// check before inserting.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM `user` WHERE username=? LIMIT 1", username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return true, nil
}

// Create hashes password with the given bcrypt cost, inserts the user and
// returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO `user` (username, email, password) VALUES (?,?,?)",
		username, email, hash)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return uint64(id), nil
}

// GetByUsername fetches the oldest user registered under username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getOne(ctx,
		"SELECT id,username,email,password FROM `user` WHERE username=? ORDER BY id LIMIT 1",
		username)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx,
		"SELECT id,username,email,password FROM `user` WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Email, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdatePassword replaces the stored hash for the user with a fresh bcrypt
// hash of password.  It returns ErrUserNotFound when no row has that id.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, "UPDATE `user` SET password=? WHERE id=?", hash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
