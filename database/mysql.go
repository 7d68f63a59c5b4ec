package database

import (
	"database/sql"
	"errors"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("not found")

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func CreateTables(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			email       VARCHAR(255) NOT NULL,
			password    VARCHAR(255) NOT NULL,
			profile_pic MEDIUMTEXT NOT NULL,
			online      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  DATETIME(6) NOT NULL,
			UNIQUE KEY uk_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id          VARCHAR(36) PRIMARY KEY,
			user_id     VARCHAR(36) NOT NULL,
			friend_id   VARCHAR(36) NOT NULL,
			status      ENUM('pending', 'received', 'accepted', 'rejected') NOT NULL,
			created_at  DATETIME(6) NOT NULL,
			updated_at  DATETIME(6) NOT NULL,
			UNIQUE KEY uk_friendship (user_id, friend_id),
			INDEX idx_friend (friend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id          VARCHAR(36) PRIMARY KEY,
			sender_id   VARCHAR(36) NOT NULL,
			receiver_id VARCHAR(36) NOT NULL,
			body        TEXT NOT NULL,
			seen        BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  DATETIME(6) NOT NULL,
			INDEX idx_pair_time (sender_id, receiver_id, created_at)
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}

	return nil
}
