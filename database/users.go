package database

import (
	"context"
	"database/sql"

	"ybchat/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password, profile_pic, online, created_at) VALUES (?, ?, ?, ?, ?, FALSE, ?)",
		u.ID, u.Name, u.Email, u.Password, u.ProfilePic, u.CreatedAt,
	)
	return err
}

func (s *UserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email,
	).Scan(&taken)
	return taken, err
}

func (s *UserStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id,
	).Scan(&exists)
	return exists, err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.get(ctx, "email", email)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.get(ctx, "id", id)
}

func (s *UserStore) get(ctx context.Context, column, value string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, profile_pic, online, created_at FROM users WHERE "+column+" = ?",
		value,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.ProfilePic, &u.Online, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.UserSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, profile_pic, online, created_at FROM users ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePic, &u.Online, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserStore) SetOnline(ctx context.Context, id string, online bool) error {
	_, err := s.db.ExecContext(ctx, "UPDATE users SET online = ? WHERE id = ?", online, id)
	return err
}

func (s *UserStore) SetProfilePic(ctx context.Context, id, pic string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE users SET profile_pic = ? WHERE id = ?", pic, id)
	return err
}
