package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDeadlock(t *testing.T) {
	deadlock := &mysqldriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"mysql deadlock", deadlock, true},
		{"wrapped deadlock", fmt.Errorf("mark status: %w", deadlock), true},
		{"lock wait timeout", &mysqldriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, false},
		{"duplicate key", &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDeadlock(tt.err))
		})
	}
}

func TestTransactionRetry(t *testing.T) {
	dm := NewTestDatabase(t)
	ctx := context.Background()

	calls := 0
	err := dm.TransactionRetry(ctx, func(tx *gorm.DB) error {
		calls++
		if calls == 1 {
			return &mysqldriver.MySQLError{Number: mysqlDeadlock}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	boom := errors.New("boom")
	err = dm.TransactionRetry(ctx, func(tx *gorm.DB) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	calls = 0
	err = dm.TransactionRetry(ctx, func(tx *gorm.DB) error {
		calls++
		return &mysqldriver.MySQLError{Number: mysqlDeadlock}
	})
	assert.True(t, IsDeadlock(err))
	assert.Equal(t, 2, calls)
}
