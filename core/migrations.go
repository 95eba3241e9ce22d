package core

import (
	"context"
	"fmt"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
)

// Migrate creates or updates the tables for every persisted entity.
func (dm *DatabaseManager) Migrate(ctx context.Context) error {
	models := []interface{}{
		&model.User{},
		&model.AttendanceRecord{},
		&model.LeaveApplication{},
	}

	for _, m := range models {
		if err := dm.DB.WithContext(ctx).AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}
