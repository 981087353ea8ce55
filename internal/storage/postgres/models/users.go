package models

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type UserModel struct {
	DB *pgxpool.Pool
}

type userRow struct {
	Count       int       `db:"count"`
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	Email       string    `db:"email"`
	Role        string    `db:"role"`
	Bio         string    `db:"bio"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	IsSuperuser bool      `db:"is_superuser"`
	IsStaff     bool      `db:"is_staff"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r userRow) toUser() models.User {
	return models.User{
		ID:          r.ID,
		Username:    r.Username,
		Email:       r.Email,
		Role:        r.Role,
		Bio:         r.Bio,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		IsSuperuser: r.IsSuperuser,
		IsStaff:     r.IsStaff,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const userColumns = "id, username, email, role, bio, first_name, last_name, is_superuser, is_staff, created_at, updated_at"

func (m *UserModel) List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	query := `
	SELECT count(*) OVER() AS count, ` + userColumns + ` FROM users
	WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
	ORDER BY id
	LIMIT $2 OFFSET $3`
	rows, _ := m.DB.Query(ctx, query, search, f.Limit(), f.Offset())
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, 0, collectErr(err)
	}
	if len(collected) == 0 {
		return []models.User{}, 0, nil
	}
	users := make([]models.User, 0, len(collected))
	for _, r := range collected {
		users = append(users, r.toUser())
	}
	return users, collected[0].Count, nil
}

func (m *UserModel) getWhere(ctx context.Context, where string, args ...any) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, "SELECT 0 AS count, "+userColumns+" FROM users WHERE "+where, args...)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, collectErr(err)
	}
	user := r.toUser()
	return &user, nil
}

func (m *UserModel) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getWhere(ctx, "id = $1", id)
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getWhere(ctx, "username = $1", username)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getWhere(ctx, "email = $1", email)
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, `
	INSERT INTO users (username, email, role, bio, first_name, last_name)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING 0 AS count, `+userColumns,
		user.Username, user.Email, user.Role, user.Bio, user.FirstName, user.LastName,
	)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, collectErr(err)
	}
	inserted := r.toUser()
	return &inserted, nil
}

// Update persists a full user row and bumps updated_at; any change makes
// previously issued confirmation codes stale.
func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, `
	UPDATE users SET username = $1, email = $2, role = $3, bio = $4,
		first_name = $5, last_name = $6, updated_at = now()
	WHERE id = $7
	RETURNING 0 AS count, `+userColumns,
		user.Username, user.Email, user.Role, user.Bio, user.FirstName, user.LastName, user.ID,
	)
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, collectErr(err)
	}
	updated := r.toUser()
	return &updated, nil
}

func (m *UserModel) Delete(ctx context.Context, username string) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE username = $1", username)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
