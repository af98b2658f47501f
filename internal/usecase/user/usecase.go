package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "user-registration-service/internal/domain/user"
	apperrors "user-registration-service/pkg/errors"
	"user-registration-service/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// MissingFieldsMessage is returned when name or email is absent.
const MissingFieldsMessage = "Nome e e-mail são obrigatórios"

// Repository defines the interface for user data access operations.
// Each call runs a single statement; implementations must not retry.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error) // Insert a user and return the stored row
	List(ctx context.Context) ([]domain.User, error)                  // All users ordered by name
}

// Service implements the registration and listing operations on top of a
// Repository.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

var _ Usecase = (*Service)(nil)

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// missingField returns the first field that failed validation.
func missingField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

// Register validates the request and stores a new user. Validation failures
// never reach the repository.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	log := logger.WithContext(ctx, s.log)

	if err := s.validate.Struct(in); err != nil {
		field := missingField(err)
		log.Warn("register validation failed", zap.String("field", field), zap.Error(err))
		return nil, apperrors.NewValidationError(field, MissingFieldsMessage)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotCreated) {
			log.Error("insert returned no row", zap.String("email", in.Email))
			return nil, apperrors.NewPersistenceError(domain.ErrNotCreated.Error(), err)
		}
		log.Error("failed to register user", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewPersistenceError("", err)
	}

	log.Info("user registered", zap.Int64("id", created.ID))
	return toDTO(*created), nil
}

// List returns every user ordered by name.
func (s *Service) List(ctx context.Context) ([]User, error) {
	log := logger.WithContext(ctx, s.log)

	domainUsers, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewPersistenceError("", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = *toDTO(du)
	}

	log.Debug("users listed", zap.Int("count", len(users)))
	return users, nil
}

func toDTO(u domain.User) *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
