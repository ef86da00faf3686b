package record

import "testing"

func TestValidTTL_Bounds(t *testing.T) {
	cases := []struct {
		seconds int
		want    bool
	}{
		{29, false},
		{30, true},
		{1800, true},
		{86400, true},
		{86401, false},
		{0, false},
		{-1, false},
	}

	for _, tc := range cases {
		if got := ValidTTL(tc.seconds); got != tc.want {
			t.Errorf("ValidTTL(%d) = %v, want %v", tc.seconds, got, tc.want)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.ButtonText != "Open" {
		t.Errorf("ButtonText = %q, want %q", s.ButtonText, "Open")
	}
	if s.ButtonURL != "https://example.com" {
		t.Errorf("ButtonURL = %q, want %q", s.ButtonURL, "https://example.com")
	}
	if s.PromoText != "" {
		t.Errorf("PromoText = %q, want empty", s.PromoText)
	}
	if s.RetentionTTL != 1800 {
		t.Errorf("RetentionTTL = %d, want 1800", s.RetentionTTL)
	}
	if !ValidTTL(s.RetentionTTL) {
		t.Error("default RetentionTTL must be inside the valid range")
	}
}
