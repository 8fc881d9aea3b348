package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

type UserRepo struct{ db DBTX }

const userColumns = `
	u.user_id, u.username, u.employee_name, u.role,
	u.department_id, COALESCE(d.department_name, '')`

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, *models.Credential, error) {
	var u models.User
	var c models.Credential
	err := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`, u.password, u.password_format
		FROM users u
		LEFT JOIN department d ON d.department_id = u.department_id
		WHERE u.username = $1`, username).
		Scan(&u.ID, &u.Username, &u.EmployeeName, &u.Role, &u.DepartmentID, &u.Department, &c.Secret, &c.Format)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, &c, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN department d ON d.department_id = u.department_id
		WHERE u.user_id = $1`, id).
		Scan(&u.ID, &u.Username, &u.EmployeeName, &u.Role, &u.DepartmentID, &u.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepo) UpdateCredential(ctx context.Context, id int, c models.Credential) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, password_format = $2
		WHERE user_id = $3
	`, c.Secret, string(c.Format), id)
	if err != nil {
		return fmt.Errorf("update credential for user %d: %w", id, err)
	}
	return nil
}
