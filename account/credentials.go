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
	ErrPasswordFieldsRequired = core.NewValidationError("email, oldPassword and newPassword are required.")
	ErrOldPasswordIncorrect   = &core.Error{Kind: core.KindInvalidCredentials, Message: "Old password is incorrect."}
	ErrEmailNotRegistered     = core.NewNotFoundError("User not found")
)

// CredentialStore verifies logins and changes passwords.
type CredentialStore struct {
	dm     *core.DatabaseManager
	hasher *security.PasswordHasher
}

func NewCredentialStore(dm *core.DatabaseManager, hasher *security.PasswordHasher) *CredentialStore {
	return &CredentialStore{dm: dm, hasher: hasher}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func findByEmail(db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	err := db.Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyCredentials returns the user when password matches the stored hash.
// Deactivated accounts are reported as not found.
func (s *CredentialStore) VerifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	var user *model.User
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		var err error
		user, err = findByEmail(db, normalizeEmail(email))
		return err
	}); err != nil {
		return nil, core.NewInternalError("Server error during login.", err)
	}
	if user == nil || !user.IsActive {
		return nil, core.ErrUserNotFound
	}

	ok, err := s.hasher.Check(user.Password, password)
	if err != nil {
		return nil, core.NewInternalError("Server error during login.", err)
	}
	if !ok {
		return nil, core.ErrInvalidPassword
	}
	return user, nil
}

// ChangePassword replaces the hash after checking the old password. Existing
// sessions stay valid.
func (s *CredentialStore) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || oldPassword == "" || newPassword == "" {
		return ErrPasswordFieldsRequired
	}

	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		user, err := findByEmail(tx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrEmailNotRegistered
		}

		ok, err := s.hasher.Check(user.Password, oldPassword)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOldPasswordIncorrect
		}

		same, err := s.hasher.Check(user.Password, newPassword)
		if err != nil {
			return err
		}
		if same {
			return core.ErrSamePassword
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", user.ID).Update("password", hash).Error
	})
	if err != nil {
		if core.KindOf(err) != core.KindInternal {
			return err
		}
		return core.NewInternalError("Server error changing password.", err)
	}
	return nil
}

// Me loads the caller's own record.
func (s *CredentialStore) Me(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Take(&user, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, core.NewInternalError("Server error fetching user.", fmt.Errorf("find user %s: %w", id, err))
	}
	return &user, nil
}
