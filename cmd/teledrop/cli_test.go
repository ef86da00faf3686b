package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/teledrop/teledrop/internal/config"
	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/ops"
	"github.com/teledrop/teledrop/internal/record"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	cleanup := func() {
		database.Close()
	}
	return database, cleanup
}

// testConfig returns a default config for testing.
func testConfig() *config.Config {
	return &config.Config{
		AdminID:     1000,
		BotUsername: "teledrop_bot",
	}
}

// runApp runs the CLI with stdout captured.
func runApp(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"teledrop"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

// TestCLILinksList tests the links list command.
func TestCLILinksList(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()

	for i := 0; i < 3; i++ {
		_, err := ops.CreateSingle(database, record.SourceRef{ChatID: 1000, MessageID: 100 + i})
		if err != nil {
			t.Fatalf("failed to create test record: %v", err)
		}
	}

	app := newCLIApp(database, cfg)

	stdout, err := runApp(t, app, "links", "list")
	if err != nil {
		t.Fatalf("links list failed: %v", err)
	}

	var output ops.ListOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, stdout)
	}

	if len(output.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(output.Items))
	}
	if output.Total != 3 {
		t.Errorf("expected total=3, got %d", output.Total)
	}
}

// TestCLILinksDelete tests the links delete command.
func TestCLILinksDelete(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()

	created, err := ops.CreateSingle(database, record.SourceRef{ChatID: 1000, MessageID: 42})
	if err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}

	app := newCLIApp(database, cfg)

	stdout, err := runApp(t, app, "links", "delete", created.Token)
	if err != nil {
		t.Fatalf("links delete failed: %v", err)
	}

	var output ops.DeleteOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}

	if !output.Deleted {
		t.Error("expected deleted=true")
	}
	if output.Token != created.Token {
		t.Errorf("expected token=%s, got %s", created.Token, output.Token)
	}
}

// TestCLILinksPurge tests the links purge command.
func TestCLILinksPurge(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()

	for i := 0; i < 2; i++ {
		_, err := ops.CreateSingle(database, record.SourceRef{ChatID: 1000, MessageID: 200 + i})
		if err != nil {
			t.Fatalf("failed to create test record: %v", err)
		}
	}

	app := newCLIApp(database, cfg)

	stdout, err := runApp(t, app, "links", "purge")
	if err != nil {
		t.Fatalf("links purge failed: %v", err)
	}

	var output ops.PurgeOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}

	if output.Records != 2 {
		t.Errorf("expected records=2, got %d", output.Records)
	}

	listOutput, err := ops.List(database)
	if err != nil {
		t.Fatalf("failed to list after purge: %v", err)
	}
	if listOutput.Total != 0 {
		t.Errorf("expected empty registry after purge, got %d", listOutput.Total)
	}
}

// TestCLIConfigShow tests the config show command.
func TestCLIConfigShow(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()

	app := newCLIApp(database, cfg)

	stdout, err := runApp(t, app, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var settings record.Settings
	if err := json.Unmarshal([]byte(stdout), &settings); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}

	if settings.ButtonText != record.DefaultButtonText {
		t.Errorf("expected button_text=%q, got %q", record.DefaultButtonText, settings.ButtonText)
	}
	if settings.RetentionTTL != record.DefaultRetentionTTL {
		t.Errorf("expected retention_ttl=%d, got %d", record.DefaultRetentionTTL, settings.RetentionTTL)
	}
}

// TestCLIConfigSetTTL tests the config set-ttl command.
func TestCLIConfigSetTTL(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()

	app := newCLIApp(database, cfg)

	stdout, err := runApp(t, app, "config", "set-ttl", "3600")
	if err != nil {
		t.Fatalf("config set-ttl failed: %v", err)
	}

	var settings record.Settings
	if err := json.Unmarshal([]byte(stdout), &settings); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if settings.RetentionTTL != 3600 {
		t.Errorf("expected retention_ttl=3600, got %d", settings.RetentionTTL)
	}

	persisted, err := ops.GetSettings(database)
	if err != nil {
		t.Fatalf("failed to read settings back: %v", err)
	}
	if persisted.RetentionTTL != 3600 {
		t.Errorf("expected persisted retention_ttl=3600, got %d", persisted.RetentionTTL)
	}
}

// TestCLIErrorHandling tests error handling in CLI commands.
func TestCLIErrorHandling(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := testConfig()

	app := newCLIApp(database, cfg)

	t.Run("delete unknown token returns error", func(t *testing.T) {
		_, err := runApp(t, app, "links", "delete", "01J0000000000000000000000X")
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("delete without token returns error", func(t *testing.T) {
		_, err := runApp(t, app, "links", "delete")
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("set-ttl below minimum returns error", func(t *testing.T) {
		_, err := runApp(t, app, "config", "set-ttl", "10")
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("set-ttl non-numeric returns error", func(t *testing.T) {
		_, err := runApp(t, app, "config", "set-ttl", "soon")
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}
