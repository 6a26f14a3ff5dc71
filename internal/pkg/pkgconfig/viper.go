package pkgconfig

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: GOPAY_PAYMENTS_AUTH_JWT_SECRET
// replaces payments.auth.jwt_secret.
const EnvPrefix = "GOPAY"

type Viper struct {
	v *viper.Viper
}

// NewViper reads the file at filename, its format taken from the extension,
// and layers GOPAY_* environment variables on top.
func NewViper(filename string) (*Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config file changed", "file", e.Name, "op", e.Op.String())
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

func (c *Viper) GetInt(key string) int64              { return c.v.GetInt64(key) }
func (c *Viper) GetBool(key string) bool              { return c.v.GetBool(key) }
func (c *Viper) GetString(key string) string          { return c.v.GetString(key) }
func (c *Viper) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// GetBinary decodes a base64 value. Malformed input reads as nil.
func (c *Viper) GetBinary(key string) []byte {
	raw, err := base64.StdEncoding.DecodeString(c.v.GetString(key))
	if err != nil {
		return nil
	}
	return raw
}

// GetArray accepts either a YAML list or a comma separated string. Items are
// trimmed and blanks dropped.
func (c *Viper) GetArray(key string) []string {
	var items []string
	for _, item := range c.v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return items
}

func (c *Viper) Close() error { return nil }
