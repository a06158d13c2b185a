package service

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

const (
	ConfigRelayEndpoint          = "relay_endpoint"
	ConfigPaymentURLOneOff       = "payment_url_one_off"
	ConfigPaymentURLSubscription = "payment_url_subscription"
	ConfigSourceURL              = "source_url"
)

var configDefaults = map[string]string{
	ConfigRelayEndpoint:          "https://formspree.io/f/mreqnoly",
	ConfigPaymentURLOneOff:       "https://pci.jotform.com/form/260355646726059",
	ConfigPaymentURLSubscription: "https://pci.jotform.com/form/260355571683058",
	ConfigSourceURL:              "intake-cli",
}

var configEnv = map[string]string{
	ConfigRelayEndpoint:          "INTAKE_RELAY_ENDPOINT",
	ConfigPaymentURLOneOff:       "INTAKE_PAYMENT_URL_ONE_OFF",
	ConfigPaymentURLSubscription: "INTAKE_PAYMENT_URL_SUBSCRIPTION",
	ConfigSourceURL:              "INTAKE_SOURCE_URL",
}

// Settings is the resolved configuration: environment over stored value over default.
type Settings struct {
	RelayEndpoint          string
	PaymentURLOneOff       string
	PaymentURLSubscription string
	SourceURL              string
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	if _, ok := configDefaults[key]; !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

func LoadSettings(db *sql.DB) (Settings, error) {
	stored, err := ListConfig(db)
	if err != nil {
		return Settings{}, err
	}
	resolve := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(configEnv[key])); v != "" {
			return v
		}
		if v, ok := stored[key]; ok {
			return v
		}
		return configDefaults[key]
	}
	return Settings{
		RelayEndpoint:          resolve(ConfigRelayEndpoint),
		PaymentURLOneOff:       resolve(ConfigPaymentURLOneOff),
		PaymentURLSubscription: resolve(ConfigPaymentURLSubscription),
		SourceURL:              resolve(ConfigSourceURL),
	}, nil
}

// PaymentURL returns the payment form configured for plan.
func (s Settings) PaymentURL(plan string) (string, error) {
	switch plan {
	case PlanOneOff:
		return s.PaymentURLOneOff, nil
	case PlanSubscription:
		return s.PaymentURLSubscription, nil
	default:
		return "", fmt.Errorf("invalid payment plan %q (use %s or %s)", plan, PlanOneOff, PlanSubscription)
	}
}
