package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/draw-advisor/internal/config"
)

// testConfigEnv overrides the default test config location.
const testConfigEnv = "DRAW_ADVISOR_TEST_CONFIG"

// SetupTestDB connects to the test database described by
// config/config.yaml.test. Tests are skipped rather than failed when the
// database is unreachable, so the suite stays runnable without a local
// Postgres. The connection is closed when the test finishes.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(testConfigEnv)
	if path == "" {
		path = "../../config/config.yaml.test"
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config %s: %v", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(db.Close)

	return db
}

// ApplyTestMigrations executes every *.up.sql file in dir in lexical order,
// mirroring what the migrate CLI does in deployment. Migrations are written
// with IF NOT EXISTS guards, so repeated application is harmless.
func ApplyTestMigrations(ctx context.Context, db *DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(stmt)); err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
	}
	return nil
}
