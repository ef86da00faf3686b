package record

// Retention TTL bounds in seconds.
const (
	MinRetentionTTL = 30
	MaxRetentionTTL = 86400
)

// Default settings values, used when a key has never been set.
const (
	DefaultButtonText   = "Open"
	DefaultButtonURL    = "https://example.com"
	DefaultPromoText    = ""
	DefaultJoinText     = "Join the required channels below, then press Try Again."
	DefaultRetentionTTL = 1800
)

// Settings holds the operator-configurable scalars. Each field may be
// overwritten independently; zero values never reach callers because
// the store fills in defaults on read.
type Settings struct {
	ButtonText   string `json:"button_text"`
	ButtonURL    string `json:"button_url"`
	JoinText     string `json:"join_text"`
	PromoText    string `json:"promo_text"`
	RetentionTTL int    `json:"retention_ttl"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		ButtonText:   DefaultButtonText,
		ButtonURL:    DefaultButtonURL,
		JoinText:     DefaultJoinText,
		PromoText:    DefaultPromoText,
		RetentionTTL: DefaultRetentionTTL,
	}
}

// ValidTTL reports whether seconds is inside the closed retention range.
func ValidTTL(seconds int) bool {
	return seconds >= MinRetentionTTL && seconds <= MaxRetentionTTL
}
