package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rmontes/webauth/internal/models"
)

// UserDirectoryProvider defines the interface for the user directory.
type UserDirectoryProvider interface {
	Insert(username, email, passwordHash string) (models.User, error)
	FindByEmail(email string) ([]models.User, error)
}

// UserDirectory stores and retrieves user records keyed by email.
type UserDirectory struct {
	db *sql.DB
}

// NewUserDirectory creates a new UserDirectory.
func NewUserDirectory(db *sql.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

// Insert stores a new user record. The record is immutable once written;
// there are no update or delete flows.
func (d *UserDirectory) Insert(username, email, passwordHash string) (models.User, error) {
	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	stmt, err := d.db.Prepare("INSERT INTO users(id, username, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByEmail returns every record matching the email, including the
// password hash. The schema does not enforce email uniqueness, so more
// than one record can come back; callers own the multiplicity check.
func (d *UserDirectory) FindByEmail(email string) ([]models.User, error) {
	rows, err := d.db.Query("SELECT id, username, email, password_hash FROM users WHERE email = ?", email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
