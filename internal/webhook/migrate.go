package webhook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies pending migrations from migrationsPath/<driver> to
// dataSourceName. Grounded on the teacher's pkg/store.Migrate: same
// driver-name-from-DSN-scheme dispatch and the same ErrNoChange
// treated as success, generalized to a caller-supplied migrations root
// instead of a hardcoded "migrations" literal.
func Migrate(migrationsPath, dataSourceName string) error {
	if !strings.Contains(dataSourceName, "://") {
		return fmt.Errorf("webhook: undefined data source name %q", dataSourceName)
	}
	driverName := strings.ToLower(strings.Split(dataSourceName, "://")[0])

	m, err := migrate.New(fmt.Sprintf("file://%s/%s", migrationsPath, driverName), dataSourceName)
	if err != nil {
		return fmt.Errorf("webhook: opening migrations: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("webhook: applying migrations: %w", err)
	}
	return nil
}
