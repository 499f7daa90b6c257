// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//	type Settings struct {
//	    Service string `env:"FSM_SERVICE_NAME" envDefault:"fsmdemo"`
//	    Env     string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var s Settings
//	config.MustLoad(&s)
//
// Parsed values are cached per type, so repeated Load calls are cheap and see
// a consistent snapshot. ResetCache clears the cache; tests use it after
// changing the environment.
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrInvalidConfigType, ErrNilPointer and ErrLoadingEnvFile.
package config
