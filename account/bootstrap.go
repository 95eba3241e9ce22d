package account

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
)

type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin creates the seed admin when no Admin exists. It reports whether
// a user was created and is safe to run on every start.
func EnsureAdmin(ctx context.Context, dm *core.DatabaseManager, hasher *security.PasswordHasher, seed SeedAdmin) (bool, error) {
	created := false
	err := dm.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := hasher.Hash(seed.Password)
		if err != nil {
			return err
		}
		admin := &model.User{
			Name:     seed.Name,
			Email:    seed.Email,
			Password: hash,
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}
	return created, nil
}
