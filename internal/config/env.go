package config

import (
	"strings"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// bindEnvKeys registers every config key so AutomaticEnv overrides apply
// during Unmarshal even when the key is absent from the file.
func bindEnvKeys() {
	for _, key := range []string{
		"remote.url", "remote.token",
		"storage.path",
		"ui.default_order",
		"logging.file", "logging.level",
		"server.addr", "server.db_path", "server.tokens",
	} {
		_ = viper.BindEnv(key)
	}
}
