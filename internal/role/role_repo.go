package role

import (
	"context"
	"errors"

	roleerrors "go-ems/internal/role/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Role, error)
	FindAll(ctx context.Context) ([]Role, error)
	SeedDefaults(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Role, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, roleerrors.ErrInvalidRoleID
	}

	var role Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, roleerrors.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).Order("role ASC").Find(&roles).Error
	return roles, err
}

// SeedDefaults inserts any missing role from Names.
func (r *repository) SeedDefaults(ctx context.Context) error {
	for _, name := range Names {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Role{Role: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
