package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
)

var (
	ErrEmailTaken       = core.NewConflictError("Email already exists")
	ErrUserMissing      = core.NewNotFoundError("User not found")
	ErrEmployeeRequired = core.NewValidationError("name, email and password are required.")
)

type EmployeeInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Position   string
	Phone      string
}

// EmployeeUpdate carries only the fields present in the request.
type EmployeeUpdate struct {
	Name       *string
	Email      *string
	Password   *string
	Department *string
	Position   *string
	Phone      *string
	IsActive   *bool
}

// Directory is the admin-side employee management.
type Directory struct {
	dm     *core.DatabaseManager
	hasher *security.PasswordHasher
}

func NewDirectory(dm *core.DatabaseManager, hasher *security.PasswordHasher) *Directory {
	return &Directory{dm: dm, hasher: hasher}
}

// ListEmployees returns active users with the Employee role.
func (d *Directory) ListEmployees(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := d.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("role = ? AND is_active = ?", model.RoleEmployee, true).
			Order("created_at DESC").
			Find(&users).Error
	})
	if err != nil {
		return nil, core.NewInternalError("Server error fetching users.", err)
	}
	return users, nil
}

func (d *Directory) CreateEmployee(ctx context.Context, input EmployeeInput) (*model.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrEmployeeRequired
	}

	hash, err := d.hasher.Hash(input.Password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		return nil, core.NewInternalError("Server error creating user.", err)
	}

	user := &model.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   hash,
		Role:       model.RoleEmployee,
		Department: input.Department,
		Position:   input.Position,
		Phone:      input.Phone,
		IsActive:   true,
	}
	err = d.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Create(user).Error
	})
	if core.IsDuplicateKey(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, core.NewInternalError("Server error creating user.", err)
	}
	return user, nil
}

func (d *Directory) UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) (*model.User, error) {
	changes := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			changes[column] = strings.TrimSpace(*v)
		}
	}
	setString("name", update.Name)
	setString("email", update.Email)
	setString("department", update.Department)
	setString("position", update.Position)
	setString("phone", update.Phone)
	if update.IsActive != nil {
		changes["is_active"] = *update.IsActive
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := d.hasher.Hash(*update.Password)
		if errors.Is(err, security.ErrPasswordTooLong) {
			return nil, err
		}
		if err != nil {
			return nil, core.NewInternalError("Server error updating user.", err)
		}
		changes["password"] = hash
	}
	if v, ok := changes["name"]; ok && v == "" {
		return nil, core.NewValidationError("name cannot be empty.")
	}
	if v, ok := changes["email"]; ok && v == "" {
		return nil, core.NewValidationError("email cannot be empty.")
	}

	var user model.User
	err := d.dm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Take(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Take(&user, "id = ?", id).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserMissing
	case core.IsDuplicateKey(err):
		return nil, ErrEmailTaken
	case err != nil:
		return nil, core.NewInternalError("Server error updating user.", fmt.Errorf("update user %s: %w", id, err))
	}
	return &user, nil
}

// DeactivateEmployee is the soft delete: the record stays, is_active is cleared.
func (d *Directory) DeactivateEmployee(ctx context.Context, id string) error {
	var affected int64
	err := d.dm.Exec(ctx, func(db *gorm.DB) error {
		result := db.Model(&model.User{}).Where("id = ?", id).Update("is_active", false)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return core.NewInternalError("Server error deactivating user.", err)
	}
	if affected == 0 {
		return ErrUserMissing
	}
	return nil
}
