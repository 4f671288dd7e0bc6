package migrate_test

import (
	"testing"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
