package app

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/security"
)

type fakeSessions struct {
	mu      sync.Mutex
	next    int
	tokens  map[string]common.UUID
	deleted []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[string]common.UUID)}
}

func (s *fakeSessions) Create(ctx context.Context, employerID common.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	token := fmt.Sprintf("token-%d", s.next)
	s.tokens[token] = employerID
	return token, nil
}

func (s *fakeSessions) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	s.deleted = append(s.deleted, token)
	return nil
}

func newAuthFixture() (*AuthService, *fakeEmployerRepo, *fakeSessions) {
	employers := newFakeEmployerRepo()
	sessions := newFakeSessions()
	hasher := security.NewPasswordHasher(4) // min cost keeps the tests quick
	return NewAuthService(employers, hasher, sessions, &testLogger{}), employers, sessions
}

func registerInput() RegisterInput {
	return RegisterInput{
		OrganizationName: "School No. 12",
		ContactName:      "Maria Petrova",
		Phone:            "+7 912 000-11-22",
		Email:            "director@school12.example",
		Password:         "correct horse",
	}
}

func TestRegisterHashesPasswordAndOpensSession(t *testing.T) {
	auth, employers, sessions := newAuthFixture()

	result, err := auth.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.SessionToken == "" {
		t.Fatal("expected a session token")
	}
	if got := sessions.tokens[result.SessionToken]; got != result.Employer.ID {
		t.Fatalf("session bound to %s, want %s", got, result.Employer.ID)
	}

	stored, err := employers.GetByEmail(context.Background(), "director@school12.example")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.PasswordHash == "correct horse" {
		t.Fatal("password must not be stored in the clear")
	}
	if stored.PasswordHash == "" {
		t.Fatal("expected a stored password hash")
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	auth, _, _ := newAuthFixture()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"organization name", func(in *RegisterInput) { in.OrganizationName = "" }},
		{"contact name", func(in *RegisterInput) { in.ContactName = "" }},
		{"phone", func(in *RegisterInput) { in.Phone = "" }},
		{"email", func(in *RegisterInput) { in.Email = "" }},
		{"password", func(in *RegisterInput) { in.Password = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := registerInput()
			tc.mutate(&input)
			if _, err := auth.Register(context.Background(), input); !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _, _ := newAuthFixture()

	if _, err := auth.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	duplicate := registerInput()
	duplicate.OrganizationName = "Another School"
	if _, err := auth.Register(context.Background(), duplicate); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginChecksCredentials(t *testing.T) {
	auth, _, _ := newAuthFixture()

	registered, err := auth.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := auth.Login(context.Background(), "director@school12.example", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Employer.ID != registered.Employer.ID {
		t.Fatalf("logged in as %s, want %s", result.Employer.ID, registered.Employer.ID)
	}

	// Unknown email and wrong password produce the same answer.
	if _, err := auth.Login(context.Background(), "nobody@school12.example", "correct horse"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := auth.Login(context.Background(), "director@school12.example", "wrong horse"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := auth.Login(context.Background(), "", ""); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogoutDropsSession(t *testing.T) {
	auth, _, sessions := newAuthFixture()

	result, err := auth.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := auth.Logout(context.Background(), result.SessionToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.tokens[result.SessionToken]; ok {
		t.Fatal("expected the session to be removed")
	}
}
