package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"user-api/internal/domain"
	"user-api/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository good enough for
// exercising the service rules, including the unique-email constraint.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", repository.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.ModifiedAt = now
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return user.ID.Hex(), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, opts repository.ListOptions) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if opts.Status != "" && u.AccountStatus != opts.Status {
			continue
		}
		// mirror the storage projection: id and names only
		out = append(out, domain.User{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	if opts.Offset >= len(out) {
		return []domain.User{}, nil
	}
	out = out[opts.Offset:]
	if opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Email != "" {
		for otherID, other := range r.users {
			if otherID != id && other.Email == patch.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = patch.Email
	}
	if patch.FirstName != "" {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		u.LastName = patch.LastName
	}
	if patch.Password != "" {
		u.Password = patch.Password
	}
	if patch.AccountStatus != "" {
		u.AccountStatus = patch.AccountStatus
	}
	u.ModifiedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func testInput() domain.CreateUserInput {
	return domain.CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     "testuser@example.com",
		Password:  "root1234",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register(ctx, testInput())
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "Test", user.FirstName)
	assert.Equal(t, "testuser@example.com", user.Email)
	assert.Equal(t, domain.StatusCreated, user.AccountStatus)
	assert.Empty(t, user.Password, "password hash must not leave the service")

	stored, err := repo.GetByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.NotEqual(t, "root1234", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("root1234")))
}

func TestRegisterWithExplicitStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	in := testInput()
	in.AccountStatus = "ACTIVE"
	user, err := svc.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, user.AccountStatus)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Register(ctx, testInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, testInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := hashPassword("root1234")
	require.NoError(t, err)
	h2, err := hashPassword("root1234")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, checkPassword("root1234", h1))
	assert.True(t, checkPassword("root1234", h2))
	assert.False(t, checkPassword("different", h1))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	created, err := svc.Register(ctx, testInput())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "testuser@example.com", "root1234")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Empty(t, user.Password)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "testuser@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email yields identical error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "root1234")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateSingleField(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Register(ctx, testInput())
	require.NoError(t, err)
	before, err := repo.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	updated, err := svc.Update(ctx, created.ID.Hex(), domain.UpdateUserInput{FirstName: "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, before.LastName, updated.LastName)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.AccountStatus, updated.AccountStatus)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.ModifiedAt.After(before.ModifiedAt))

	stored, err := repo.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, before.Password, stored.Password, "password untouched by name-only update")
}

func TestUpdatePasswordIsRehashed(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Register(ctx, testInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID.Hex(), domain.UpdateUserInput{Password: "newsecret99"})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.NotEqual(t, "newsecret99", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret99")))
}

func TestUpdateEmailCollision(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	first, err := svc.Register(ctx, testInput())
	require.NoError(t, err)

	other := testInput()
	other.Email = "other@example.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	_, err = svc.Update(ctx, first.ID.Hex(), domain.UpdateUserInput{Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// re-submitting your own email is not a collision
	_, err = svc.Update(ctx, first.ID.Hex(), domain.UpdateUserInput{Email: "testuser@example.com"})
	assert.NoError(t, err)
}

func TestListReturnsActiveOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	active := testInput()
	active.Email = "active@example.com"
	active.AccountStatus = "ACTIVE"
	activeUser, err := svc.Register(ctx, active)
	require.NoError(t, err)

	created := testInput()
	created.Email = "created@example.com"
	_, err = svc.Register(ctx, created)
	require.NoError(t, err)

	users, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, activeUser.ID, users[0].ID)
	assert.Empty(t, users[0].Email, "listing projects id and names only")
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	created, err := svc.Register(ctx, testInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))

	err = svc.Delete(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
