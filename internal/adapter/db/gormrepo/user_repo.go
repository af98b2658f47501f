package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user-registration-service/internal/domain/user"
	"user-registration-service/pkg/logger"
)

// UserRepo implements the user Repository on top of GORM. It works with any
// dialector GORM supports; the service ships with PostgreSQL and SQLite.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// AutoMigrate creates the users table when it does not exist yet.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// Create inserts a new user with a single INSERT ... RETURNING statement and
// returns the stored row. It returns user.ErrNotCreated when the statement
// succeeds without returning a row.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	log := logger.WithContext(ctx, r.log)

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&model)
	if result.Error != nil {
		log.Error("failed to create user in db", zap.Error(result.Error), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", result.Error)
	}
	if result.RowsAffected == 0 || model.ID == 0 {
		log.Error("insert returned no row", zap.String("email", u.Email))
		return nil, user.ErrNotCreated
	}

	log.Info("user created in db", zap.Int64("id", model.ID))
	return &user.User{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
	}, nil
}

// List retrieves every user ordered by name using the store's collation.
// Users sharing a name are ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = user.User{
			ID:    model.ID,
			Name:  model.Name,
			Email: model.Email,
		}
	}

	return users, nil
}
