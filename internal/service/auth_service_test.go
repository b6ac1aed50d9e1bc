package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/academix/journey-backend/internal/config"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is an in-memory UserStore enforcing the same uniqueness
// guarantees as the Postgres repository.
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]*model.User    // by email
	profiles map[string]*model.Profile // by id
	students map[string]*model.Student // by id
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:    make(map[string]*model.User),
		profiles: make(map[string]*model.Profile),
		students: make(map[string]*model.Student),
	}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) CreateWithProfile(_ context.Context, user *model.User, profile *model.Profile, child *model.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	if child != nil {
		for _, s := range f.students {
			if s.AdmissionNumber == child.AdmissionNumber {
				return repository.ErrDuplicateAdmissionNo
			}
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	profile.CreatedAt, profile.UpdatedAt = now, now
	f.users[user.Email] = user
	f.profiles[profile.ID] = profile
	if child != nil {
		child.CreatedAt, child.UpdatedAt = now, now
		f.students[child.ID] = child
	}
	return nil
}

func (f *fakeUserStore) GetProfile(_ context.Context, id string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestService() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthService(testConfig(), store), store
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	hash, err := svc.HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", hash)

	assert.NoError(t, svc.CheckPassword(hash, "Secret123!"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong-password"), ErrInvalidCredentials)
}

func TestPasswordHashIsSalted(t *testing.T) {
	svc, _ := newTestService()

	h1, err := svc.HashPassword("Secret123!")
	require.NoError(t, err)
	h2, err := svc.HashPassword("Secret123!")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NoError(t, svc.CheckPassword(h1, "Secret123!"))
	assert.NoError(t, svc.CheckPassword(h2, "Secret123!"))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	svc, _ := newTestService()

	assert.ErrorIs(t, svc.CheckPassword("not-a-bcrypt-hash", "anything"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.CheckPassword("", "anything"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	profile := &model.Profile{ID: "user-1", Email: "teacher@school.test", Role: model.RoleTeacher}
	token, err := svc.GenerateToken(profile)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "teacher@school.test", claims.Email)
	assert.Equal(t, model.RoleTeacher, claims.Role)
}

func TestTokenTamperDetected(t *testing.T) {
	svc, _ := newTestService()

	token, err := svc.GenerateToken(&model.Profile{ID: "user-1", Email: "a@b.test", Role: model.RoleParent})
	require.NoError(t, err)

	// Flip one character in the signature segment.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)

	// Tampering the payload must fail too.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = "x" + parts[1][1:]
	_, err = svc.ValidateToken(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	svc := NewAuthService(cfg, newFakeUserStore())

	token, err := svc.GenerateToken(&model.Profile{ID: "user-1", Email: "a@b.test", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestRegisterDefaultsRoleToParent(t *testing.T) {
	svc, store := newTestService()

	profile, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "parent@school.test",
		Password:  "Secret123!",
		FirstName: "Pat",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleParent, profile.Role)
	assert.Equal(t, "parent@school.test", profile.Email)

	stored, err := store.FindByEmail(context.Background(), "parent@school.test")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := &model.RegisterRequest{
		Email:     "dup@school.test",
		Password:  "Secret123!",
		FirstName: "First",
		LastName:  "User",
		Role:      model.RoleTeacher,
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterConcurrentDoubleSubmit(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	req := func() *model.RegisterRequest {
		return &model.RegisterRequest{
			Email:     "race@school.test",
			Password:  "Secret123!",
			FirstName: "Race",
			LastName:  "Condition",
		}
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, req())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrEmailTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.users, 1)
	assert.Len(t, store.profiles, 1)
}

func TestRegisterParentWithChild(t *testing.T) {
	svc, store := newTestService()

	profile, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "parent@school.test",
		Password:  "Secret123!",
		FirstName: "Pat",
		LastName:  "Doe",
		Role:      model.RoleParent,
		ChildDetails: &model.ChildDetails{
			FirstName:       "Casey",
			LastName:        "Doe",
			AdmissionNumber: "ADM-001",
			DateOfBirth:     "2015-09-01",
			Grade:           "5",
			Stream:          "Blue",
		},
	})
	require.NoError(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.students, 1)
	for _, s := range store.students {
		require.NotNil(t, s.ParentID)
		assert.Equal(t, profile.ID, *s.ParentID)
		assert.Equal(t, "ADM-001", s.AdmissionNumber)
		assert.Equal(t, 2015, s.DateOfBirth.Year())
		require.NotNil(t, s.Stream)
		assert.Equal(t, "Blue", *s.Stream)
	}
}

func TestRegisterChildIgnoredForNonParent(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "teacher@school.test",
		Password:  "Secret123!",
		FirstName: "Terry",
		LastName:  "Doe",
		Role:      model.RoleTeacher,
		ChildDetails: &model.ChildDetails{
			FirstName:       "Casey",
			LastName:        "Doe",
			AdmissionNumber: "ADM-002",
			DateOfBirth:     "2015-09-01",
			Grade:           "5",
		},
	})
	require.NoError(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.students)
}

func TestRegisterAtomicOnChildConflict(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	child := &model.ChildDetails{
		FirstName:       "Casey",
		LastName:        "Doe",
		AdmissionNumber: "ADM-003",
		DateOfBirth:     "2015-09-01",
		Grade:           "5",
	}

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "first@school.test", Password: "Secret123!",
		FirstName: "A", LastName: "One", Role: model.RoleParent, ChildDetails: child,
	})
	require.NoError(t, err)

	// Second parent claims the same admission number: whole registration
	// must fail with no orphan user or profile.
	_, err = svc.Register(ctx, &model.RegisterRequest{
		Email: "second@school.test", Password: "Secret123!",
		FirstName: "B", LastName: "Two", Role: model.RoleParent, ChildDetails: child,
	})
	assert.ErrorIs(t, err, ErrAdmissionNumberTaken)

	_, err = store.FindByEmail(ctx, "second@school.test")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.students, 1)
}

func TestLoginGenericFailures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "known@school.test", Password: "Secret123!",
		FirstName: "K", LastName: "User", Role: model.RoleTeacher,
	})
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, &model.LoginRequest{Email: "nobody@school.test", Password: "whatever"})
	_, _, errWrongPw := svc.Login(ctx, &model.LoginRequest{Email: "known@school.test", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	// Same error value means the same response shape; no account enumeration.
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestLoginMissingProfileIsAuthFailure(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "ghost@school.test", Password: "Secret123!",
		FirstName: "G", LastName: "Host",
	})
	require.NoError(t, err)

	// Simulate an integrity violation: user row without a profile.
	store.mu.Lock()
	for id := range store.profiles {
		delete(store.profiles, id)
	}
	store.mu.Unlock()

	_, _, err = svc.Login(ctx, &model.LoginRequest{Email: "ghost@school.test", Password: "Secret123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "teacher@school.test", Password: "Secret123!",
		FirstName: "Terry", LastName: "Doe", Role: model.RoleTeacher,
	})
	require.NoError(t, err)

	profile, token, err := svc.Login(ctx, &model.LoginRequest{Email: "teacher@school.test", Password: "Secret123!"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, profile.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
}
