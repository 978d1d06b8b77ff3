package app

import (
	"context"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/employer"
	"github.com/klimenko666/dptmptch/internal/security"
)

// Sessions is the slice of the session store the auth flow uses.
type Sessions interface {
	Create(ctx context.Context, employerID common.UUID) (string, error)
	Delete(ctx context.Context, token string) error
}

// AuthService handles employer registration and the session-cookie
// login flow backing the dashboard.
type AuthService struct {
	employers employer.Repository
	hasher    *security.PasswordHasher
	sessions  Sessions
	logger    Logger
}

func NewAuthService(employers employer.Repository, hasher *security.PasswordHasher, sessions Sessions, logger Logger) *AuthService {
	return &AuthService{employers: employers, hasher: hasher, sessions: sessions, logger: logger}
}

type RegisterInput struct {
	OrganizationName string
	ContactName      string
	Phone            string
	Email            string
	Password         string
}

type AuthResult struct {
	Employer     *employer.Employer
	SessionToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	switch {
	case input.OrganizationName == "":
		return nil, common.NewValidationError("organization name is required", nil)
	case input.ContactName == "":
		return nil, common.NewValidationError("contact name is required", nil)
	case input.Phone == "":
		return nil, common.NewValidationError("phone is required", nil)
	case input.Email == "":
		return nil, common.NewValidationError("email is required", nil)
	case input.Password == "":
		return nil, common.NewValidationError("password is required", nil)
	}
	if _, err := s.employers.GetByEmail(ctx, input.Email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.employers.Create(ctx, employer.Employer{
		OrganizationName: input.OrganizationName,
		ContactName:      input.ContactName,
		Phone:            input.Phone,
		Email:            input.Email,
		PasswordHash:     hash,
	})
	if err != nil {
		return nil, err
	}
	token, err := s.sessions.Create(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("employer registered: " + created.ID.String())
	return &AuthResult{Employer: created, SessionToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("email and password are required", nil)
	}
	found, err := s.employers.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if !s.hasher.Compare(found.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	token, err := s.sessions.Create(ctx, found.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Employer: found, SessionToken: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) CurrentEmployer(ctx context.Context, id common.UUID) (*employer.Employer, error) {
	return s.employers.GetByID(ctx, id)
}
