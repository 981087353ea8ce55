package users

import (
	"context"
	"errors"
	"log/slog"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type UsersStorage interface {
	List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

type UserService struct {
	log     *slog.Logger
	storage UsersStorage
}

func New(log *slog.Logger, storage UsersStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

type CreateParams struct {
	Username  string
	Email     string
	Role      string
	Bio       string
	FirstName string
	LastName  string
}

// UpdateParams carries a partial update; nil fields keep their stored value.
type UpdateParams struct {
	Username  *string
	Email     *string
	Role      *string
	Bio       *string
	FirstName *string
	LastName  *string
}

func (s *UserService) List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	const op = "users.UserService.List"
	users, total, err := s.storage.List(ctx, search, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	const op = "users.UserService.Get"
	log := s.log.With("op", op, "username", username)
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, params CreateParams) (*models.User, error) {
	const op = "users.UserService.Create"
	log := s.log.With("op", op, "username", params.Username)
	role := params.Role
	if role == "" {
		role = models.RoleUser
	}
	user, err := s.storage.Insert(ctx, &models.User{
		Username:  params.Username,
		Email:     params.Email,
		Role:      role,
		Bio:       params.Bio,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user already exists")
			return nil, ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, username string, params UpdateParams) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "username", username)
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	merged := *user
	if params.Username != nil {
		merged.Username = *params.Username
	}
	if params.Email != nil {
		merged.Email = *params.Email
	}
	if params.Role != nil {
		merged.Role = *params.Role
	}
	if params.Bio != nil {
		merged.Bio = *params.Bio
	}
	if params.FirstName != nil {
		merged.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		merged.LastName = *params.LastName
	}
	updated, err := s.storage.Update(ctx, &merged)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("user already exists")
			return nil, ErrUserAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

// UpdateMe applies a self-service partial update. The role field is force
// reset to the stored value, so a user cannot escalate their own tier even
// when role is present in the payload.
func (s *UserService) UpdateMe(ctx context.Context, requester *models.User, params UpdateParams) (*models.User, error) {
	params.Role = nil
	return s.Update(ctx, requester.Username, params)
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	const op = "users.UserService.Delete"
	log := s.log.With("op", op, "username", username)
	if err := s.storage.Delete(ctx, username); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
