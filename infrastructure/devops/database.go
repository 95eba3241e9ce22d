package devops

import (
	"context"
	"fmt"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
)

// OpenDatabase resolves the DSN, opens the pool and migrates the schema.
func (c *Config) OpenDatabase(ctx context.Context) (*core.DatabaseManager, error) {
	if err := c.ResolveDSN(ctx); err != nil {
		return nil, fmt.Errorf("resolve dsn: %w", err)
	}

	dm, err := core.New(c.Database.Driver, c.Database.DSN, c.Database.MaxConnection, core.ParseLogLevel(c.Database.LogLevel))
	if err != nil {
		return nil, err
	}

	if err := dm.Migrate(ctx); err != nil {
		_ = dm.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return dm, nil
}
