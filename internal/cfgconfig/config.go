// Package cfgconfig loads cfgserver's runtime configuration from an
// optional TOML file, layered under environment variables, layered under
// command-line flags — the same precedence cmd/tqserver's flags used to
// apply by hand, gathered here into one reusable loader. cmd/cfgshell does
// not use it.
package cfgconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	EnvListenAddress = "CFGREC_LISTEN_ADDRESS"
	EnvJWTSecret     = "CFGREC_JWT_SECRET"
	EnvDBFile        = "CFGREC_DB_FILE"
	EnvEngine        = "CFGREC_ENGINE"
)

// Config is the on-disk / environment shape of cfgserver's settings. Load
// starts from Default() and layers the file and the environment over it;
// cmd/cfgserver then layers its flags on top.
type Config struct {
	// ListenAddress is the address cfgserver binds to, e.g. "localhost:8080".
	ListenAddress string `toml:"listen_address"`
	// JWTSecret signs bearer tokens minted from API keys. If empty,
	// cfgserver generates a random one at startup.
	JWTSecret string `toml:"jwt_secret"`
	// DBFile is the path to the sqlite database backing stored grammars.
	DBFile string `toml:"db_file"`
	// Engine names a recognition engine ("earley" or "lr1"). Load reads it,
	// but neither cmd/cfgserver nor cmd/cfgshell uses it: the server stores
	// a grammar uploaded without an engine as "earley", and cfgshell takes
	// its engine from its -e flag.
	Engine string `toml:"engine"`
}

// Default returns the baseline configuration used when no file, env var,
// or flag overrides a setting.
func Default() Config {
	return Config{
		ListenAddress: "localhost:8080",
		DBFile:        "cfgrec.db",
		Engine:        "earley",
	}
}

// Load reads a TOML config file at path and layers it over Default(),
// then layers the process environment over the result. It is not an error
// for path to not exist; in that case only defaults and environment
// variables apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config file %q: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config file %q: %w", path, err)
		}
	}

	if v := os.Getenv(EnvListenAddress); v != "" {
		cfg.ListenAddress = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv(EnvDBFile); v != "" {
		cfg.DBFile = v
	}
	if v := os.Getenv(EnvEngine); v != "" {
		cfg.Engine = v
	}

	return cfg, nil
}
