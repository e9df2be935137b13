package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the server process.
// All values come from env (optionally seeded from a .env file).
// No business logic should depend on raw environment variables.
type Config struct {
	App   AppConfig
	Vapi  VapiConfig
	Store StoreConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// VapiConfig identifies the remote calling platform.
type VapiConfig struct {
	APIKey  string
	BaseURL string

	// PhoneNumberID is the platform-side resource the outbound leg dials from.
	PhoneNumberID string
}

type StoreConfig struct {
	// RecordsPath is where the call-record document lives. Serverless
	// deployments point this at a writable temp path (e.g. /tmp/call_records.json).
	RecordsPath string

	// SquadConfig is the per-deployment stage-chain file.
	SquadConfig string
}

const (
	defaultVapiBaseURL = "https://api.vapi.ai"
	defaultRecordsPath = "call_records.json"
	defaultSquadConfig = "squad.json"
)

func Load() (Config, error) {
	// Optional env file; absence is normal outside local dev.
	_ = godotenv.Load()

	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.Vapi.APIKey = os.Getenv("VAPI_API_KEY")
	c.Vapi.BaseURL = strings.TrimSpace(os.Getenv("VAPI_BASE_URL"))
	if c.Vapi.BaseURL == "" {
		c.Vapi.BaseURL = defaultVapiBaseURL
	}
	c.Vapi.PhoneNumberID = strings.TrimSpace(os.Getenv("PHONE_NUMBER_ID"))

	c.Store.RecordsPath = strings.TrimSpace(os.Getenv("RECORDS_PATH"))
	if c.Store.RecordsPath == "" {
		c.Store.RecordsPath = defaultRecordsPath
	}
	c.Store.SquadConfig = strings.TrimSpace(os.Getenv("SQUAD_CONFIG"))
	if c.Store.SquadConfig == "" {
		c.Store.SquadConfig = defaultSquadConfig
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Vapi.APIKey == "" {
		errs = append(errs, errors.New("VAPI_API_KEY is required"))
	}
	if c.Vapi.PhoneNumberID == "" {
		errs = append(errs, errors.New("PHONE_NUMBER_ID is required"))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
