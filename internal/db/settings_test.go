package db

import (
	"testing"

	"github.com/teledrop/teledrop/internal/record"
)

func TestGetSettings_Defaults(t *testing.T) {
	database := initTestDB(t)

	s, err := GetSettings(database)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s != record.DefaultSettings() {
		t.Errorf("GetSettings = %+v, want defaults", s)
	}
}

func TestSetSetting_Overwrite(t *testing.T) {
	database := initTestDB(t)

	if err := SetSetting(database, KeyPromoText, "Check out our site"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := SetSetting(database, KeyPromoText, "New promo"); err != nil {
		t.Fatalf("second SetSetting failed: %v", err)
	}

	s, err := GetSettings(database)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.PromoText != "New promo" {
		t.Errorf("PromoText = %q, want %q", s.PromoText, "New promo")
	}
	// Untouched keys keep their defaults
	if s.ButtonText != record.DefaultButtonText {
		t.Errorf("ButtonText = %q, want default", s.ButtonText)
	}
}

func TestSetSettings_Atomic(t *testing.T) {
	database := initTestDB(t)

	err := SetSettings(database, map[string]string{
		KeyButtonText: "Visit",
		KeyButtonURL:  "https://teledrop.example",
	})
	if err != nil {
		t.Fatalf("SetSettings failed: %v", err)
	}

	s, err := GetSettings(database)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.ButtonText != "Visit" {
		t.Errorf("ButtonText = %q, want %q", s.ButtonText, "Visit")
	}
	if s.ButtonURL != "https://teledrop.example" {
		t.Errorf("ButtonURL = %q, want %q", s.ButtonURL, "https://teledrop.example")
	}
}

func TestGetSettings_BadTTLIgnored(t *testing.T) {
	database := initTestDB(t)

	// A non-numeric stored value falls back to the default rather than failing
	if err := SetSetting(database, KeyRetentionTTL, "not-a-number"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	s, err := GetSettings(database)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.RetentionTTL != record.DefaultRetentionTTL {
		t.Errorf("RetentionTTL = %d, want default %d", s.RetentionTTL, record.DefaultRetentionTTL)
	}
}

func TestReplaceChannels_Wholesale(t *testing.T) {
	database := initTestDB(t)

	first := []record.Channel{
		{ChatID: -100, Label: "@alpha"},
		{ChatID: -200, Label: "@beta"},
	}
	if err := ReplaceChannels(database, first); err != nil {
		t.Fatalf("ReplaceChannels failed: %v", err)
	}

	second := []record.Channel{{ChatID: -300, Label: "@gamma"}}
	if err := ReplaceChannels(database, second); err != nil {
		t.Fatalf("second ReplaceChannels failed: %v", err)
	}

	channels, err := ListChannels(database)
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if len(channels) != 1 {
		t.Fatalf("len(channels) = %d, want 1 (old set must be discarded)", len(channels))
	}
	if channels[0].Label != "@gamma" {
		t.Errorf("channels[0].Label = %q, want %q", channels[0].Label, "@gamma")
	}
}

func TestClearChannels(t *testing.T) {
	database := initTestDB(t)

	set := []record.Channel{
		{ChatID: -1, Label: "@a"},
		{ChatID: -2, Label: "@b"},
	}
	if err := ReplaceChannels(database, set); err != nil {
		t.Fatalf("ReplaceChannels failed: %v", err)
	}

	n, err := ClearChannels(database)
	if err != nil {
		t.Fatalf("ClearChannels failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearChannels = %d, want 2", n)
	}

	channels, err := ListChannels(database)
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if len(channels) != 0 {
		t.Errorf("len(channels) = %d after clear, want 0", len(channels))
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	database := initTestDB(t)

	// No session yet
	_, exists, err := GetSession(database, 7)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if exists {
		t.Fatal("session should not exist yet")
	}

	// Start empty, then replace with items
	if err := PutSession(database, 7, nil); err != nil {
		t.Fatalf("PutSession failed: %v", err)
	}
	items := []record.SourceRef{{ChatID: 1, MessageID: 10}, {ChatID: 1, MessageID: 11}}
	if err := PutSession(database, 7, items); err != nil {
		t.Fatalf("PutSession with items failed: %v", err)
	}

	got, exists, err := GetSession(database, 7)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !exists {
		t.Fatal("session should exist")
	}
	if len(got) != 2 || got[1].MessageID != 11 {
		t.Errorf("items = %v, want %v", got, items)
	}

	existed, err := DeleteSession(database, 7)
	if err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if !existed {
		t.Error("DeleteSession should report the session existed")
	}

	existed, err = DeleteSession(database, 7)
	if err != nil {
		t.Fatalf("second DeleteSession failed: %v", err)
	}
	if existed {
		t.Error("second DeleteSession should report no session")
	}
}
