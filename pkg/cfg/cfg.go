package cfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyAPIURL    = "api.url"
	KeyAuthToken = "auth.token"

	DefaultAPIURL = "https://api.edgehub.io"
)

// ErrNotLoggedIn is returned when an operation requires a stored auth token
// and none is configured.
var ErrNotLoggedIn = errors.New("not logged in, run 'edgehub login' first")

// ConfigDir returns the directory holding the CLI configuration and logs.
// It is created on first use.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "edgehub")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// Init loads the configuration file and environment overrides.
// A missing config file is not an error, defaults apply.
func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(ConfigDir())
	viper.SetEnvPrefix("EDGEHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault(KeyAPIURL, DefaultAPIURL)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// APIURL returns the configured cloud API endpoint.
func APIURL() string {
	return viper.GetString(KeyAPIURL)
}

// AuthToken returns the stored auth token, empty when not logged in.
func AuthToken() string {
	return viper.GetString(KeyAuthToken)
}

// RequireAuthToken returns the stored token or ErrNotLoggedIn.
func RequireAuthToken() (string, error) {
	token := AuthToken()
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// SetAuthToken persists the auth token to the config file.
func SetAuthToken(token string) error {
	viper.Set(KeyAuthToken, token)
	return write()
}

// ClearAuthToken removes the stored auth token.
func ClearAuthToken() error {
	viper.Set(KeyAuthToken, "")
	return write()
}

func write() error {
	path := filepath.Join(ConfigDir(), "config.json")
	return viper.WriteConfigAs(path)
}
