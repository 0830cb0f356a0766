package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/casavia/casavia-be/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	CreateUser(username, password, firstName, lastName, email string, roles []string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
	BecomeHost(id string) (models.User, error)
	CountUsers() (int, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var rolesJSON string
	err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &rolesJSON, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal([]byte(rolesJSON), &user.Roles); err != nil {
		return models.User{}, fmt.Errorf("corrupt roles for user %s: %w", user.ID, err)
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, username, first_name, last_name, email, password_hash, roles_json, created_at FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername retrieves a single user by their username, including the password hash.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, username, first_name, last_name, email, password_hash, roles_json, created_at FROM users WHERE username = ?", username)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser registers a new account, hashing the password. The username
// must be unique; roles must be a non-empty subset of {USER, HOST}.
func (s *UserService) CreateUser(username, password, firstName, lastName, email string, roles []string) (models.User, error) {
	if len(roles) == 0 {
		return models.User{}, ErrInvalidRole
	}
	for _, role := range roles {
		if role != models.RoleUser && role != models.RoleHost {
			return models.User{}, ErrInvalidRole
		}
	}

	if _, err := s.GetUserByUsername(username); err == nil {
		return models.User{}, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Roles:        roles,
		PasswordHash: string(hashedPassword),
	}

	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return models.User{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, first_name, last_name, email, password_hash, roles_json) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash, string(rolesJSON))
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// BecomeHost adds the HOST role to the user's role set. Promoting a user
// who is already a host is a no-op, not an error. Roles are never removed.
func (s *UserService) BecomeHost(id string) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if user.HasRole(models.RoleHost) {
		user.PasswordHash = ""
		return user, nil
	}

	user.Roles = append(user.Roles, models.RoleHost)
	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return models.User{}, err
	}

	_, err = s.db.Exec("UPDATE users SET roles_json = ? WHERE id = ?", string(rolesJSON), id)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// CountUsers returns the number of registered users.
func (s *UserService) CountUsers() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
