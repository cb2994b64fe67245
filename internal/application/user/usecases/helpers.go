package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/domain/user"
	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return errors.NewValidationError(fmt.Sprintf("password cannot exceed %d bytes", maxPasswordBytes))
	}
	return nil
}

func parseIdentity(email, fullName string) (vo.Email, vo.FullName, error) {
	e, err := vo.NewEmail(email)
	if err != nil {
		return vo.Email{}, vo.FullName{}, errors.NewValidationError(err.Error())
	}
	n, err := vo.NewFullName(fullName)
	if err != nil {
		return vo.Email{}, vo.FullName{}, errors.NewValidationError(err.Error())
	}
	return e, n, nil
}

// ensureEmailFree returns a validation error when another account owns email.
func ensureEmailFree(ctx context.Context, repo user.Repository, email vo.Email, exceptID uint) error {
	existing, err := repo.GetByEmail(ctx, email.String())
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID() != exceptID {
		return errors.NewValidationError("email already registered")
	}
	return nil
}

func loadUser(ctx context.Context, repo user.Repository, id uint, log logger.Interface) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

// mergePreferences applies a partial preferences document. dark_mode, when
// given explicitly, wins over the same key inside prefs.
func mergePreferences(current user.Preferences, prefs map[string]interface{}, darkMode *bool) user.Preferences {
	merged := current.ToMap()
	for k, v := range prefs {
		merged[k] = v
	}
	if darkMode != nil {
		merged["dark_mode"] = *darkMode
	}
	return user.PreferencesFromMap(merged)
}
