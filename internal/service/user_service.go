package service

import (
	"context"
	"errors"

	"user-api/internal/domain"
	"user-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. Unknown email and wrong password both map here so the
	// response cannot leak account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when a registration or update collides
	// with an email belonging to another account.
	ErrEmailTaken = errors.New("email already taken")
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")
)

// UserService describes user account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	// fast-path duplicate check for a clean error message; the unique
	// index on email remains the source of truth under concurrency
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	status := domain.StatusCreated
	if in.AccountStatus != "" {
		status = domain.AccountStatus(in.AccountStatus)
	}

	user := &domain.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Password:      hash,
		AccountStatus: status,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	return s.users.List(ctx, repository.ListOptions{
		Status: domain.StatusActive,
		Offset: offset,
		Limit:  limit,
	})
}

func (s *userService) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.User, error) {
	if in.Email != "" {
		existing, err := s.users.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			if existing.ID.Hex() != id {
				return nil, ErrEmailTaken
			}
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	patch := domain.UserPatch{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		AccountStatus: domain.AccountStatus(in.AccountStatus),
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = hash
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// sanitizeUser strips the password hash before a user leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.Password = ""
	return &clean
}
