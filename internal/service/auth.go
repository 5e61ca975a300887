package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/domain"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/repository"
)

type AuthService struct {
	repos *repository.Repos
}

type SignupInput struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	ContactNumber string `json:"contactNumber"`
	FieldID       string `json:"fieldId"`
}

type LoginResult struct {
	Role    string `json:"role"`
	FieldID string `json:"fieldId"`
	AdminID string `json:"adminId"`
}

// Signup creates an account. Farmers must reference an existing admin sharing
// their field id; admins link to themselves. The account id is generated
// before the insert so the self-reference needs no second write.
func (s *AuthService) Signup(in SignupInput) error {
	if _, err := s.repos.GetAccountByEmail(in.Email); err == nil {
		return ErrAlreadyExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("email lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password hash failed: %w", err)
	}

	acct := &domain.Account{
		ID:            uuid.NewString(),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Role:          in.Role,
		ContactNumber: in.ContactNumber,
		FieldID:       in.FieldID,
		CreatedAt:     time.Now(),
	}

	switch in.Role {
	case domain.RoleFarmer:
		admin, err := s.repos.FindAdminByField(in.FieldID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoAdminForField
		}
		if err != nil {
			return fmt.Errorf("admin lookup failed: %w", err)
		}
		acct.AdminID = admin.ID
	default:
		acct.AdminID = acct.ID
	}

	if err := s.repos.InsertAccount(acct); err != nil {
		return fmt.Errorf("account insert failed: %w", err)
	}
	return nil
}

// Login validates credentials and returns the role, field and admin ids the
// dashboard scopes its queries by. Admins get their own id back.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	acct, err := s.repos.GetAccountByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("email lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	adminID := acct.AdminID
	if acct.Role == domain.RoleAdmin {
		adminID = acct.ID
	}

	return &LoginResult{Role: acct.Role, FieldID: acct.FieldID, AdminID: adminID}, nil
}
