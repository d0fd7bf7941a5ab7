package services

import (
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Shahad2004/Medical-Backend/models"
)

// AuthService owns signup and login against the users table.
type AuthService struct {
	db *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{db: db}
}

// SignUp validates the payload, hashes the password and inserts the user in a
// single statement. Duplicate emails surface as a unique-constraint violation
// from the database, so a concurrent duplicate signup cannot slip through a
// separate existence check.
func (s *AuthService) SignUp(email, password, fullName, role string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errf(KindValidation, "email is required")
	}
	if password == "" {
		return nil, errf(KindValidation, "password is required")
	}
	if role != models.RoleDoctor && role != models.RolePatient {
		return nil, errf(KindValidation, "role must be doctor or patient")
	}

	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	if fullName == "" {
		fullName = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal("failed to hash password", err)
	}

	user := models.User{
		Username: username,
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
	err = s.db.QueryRow(`
		INSERT INTO users (username, password, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, username, string(hash), fullName, email, role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return nil, errf(KindConflict, "user already exists")
		}
		return nil, internal("failed to create user", err)
	}

	return &user, nil
}

// LogIn verifies the credentials and returns the matching user. A missing
// email and a wrong password produce the same error so the response never
// reveals which one failed.
func (s *AuthService) LogIn(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT id, username, full_name, email, password, role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Username, &user.FullName, &user.Email, &user.Password, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errf(KindUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, internal("failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errf(KindUnauthorized, "invalid credentials")
	}

	user.Password = ""
	return &user, nil
}
