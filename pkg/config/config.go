package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables that override configuration.
// A double underscore separates nested keys: HEIMWEH_CASTLES__DIR sets
// castles.dir.
const EnvPrefix = "HEIMWEH_"

// Config is the effective heimweh configuration
type Config struct {
	Home    string        `koanf:"home"`
	Root    string        `koanf:"root"`
	Castles CastlesConfig `koanf:"castles"`
	Link    LinkConfig    `koanf:"link"`
	Output  OutputConfig  `koanf:"output"`
}

// CastlesConfig describes where castles live
type CastlesConfig struct {
	Dir      string `koanf:"dir"`
	Manifest string `koanf:"manifest"`
}

// LinkConfig controls materialization into the home directory
type LinkConfig struct {
	DirMode os.FileMode `koanf:"dir_mode"`
}

// OutputConfig controls command output
type OutputConfig struct {
	Format string `koanf:"format"`
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// ConfigFile overrides the user config file location
	ConfigFile string
	// Overrides are applied last, keyed by dotted config path
	Overrides map[string]interface{}
	// Env supplies XDG_CONFIG_HOME and the HEIMWEH_* variables. Nil means
	// the process environment.
	Env paths.Environment
}

// Load builds the configuration from embedded defaults, the user config
// file if present, HEIMWEH_* environment variables and opts.Overrides, in
// that order.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	environment := opts.Env
	if environment == nil {
		environment = paths.OSEnvironment{}
	}

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = UserConfigPath(environment)
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile).
				WithDetail("path", configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded user config")
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access config file %s", configFile).
			WithDetail("path", configFile)
	}

	// 3. Environment
	if err := k.Load(envProvider(environment), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToFileModeHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Trace().Interface("config", cfg).Msg("Configuration loaded")
	return &cfg, nil
}

// UserConfigPath returns $XDG_CONFIG_HOME/heimweh/config.toml, looking
// XDG_CONFIG_HOME up in environment
func UserConfigPath(environment paths.Environment) string {
	if configHome := environment.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "heimweh", "config.toml")
	}
	return filepath.Join(xdg.ConfigHome, "heimweh", "config.toml")
}

func (c *Config) validate() error {
	if c.Castles.Dir == "" {
		return errors.New(errors.ErrConfigParse, "castles.dir cannot be empty")
	}
	if c.Castles.Manifest == "" {
		return errors.New(errors.ErrConfigParse, "castles.manifest cannot be empty")
	}
	if c.Link.DirMode == 0 || c.Link.DirMode&^os.ModePerm != 0 {
		return errors.Newf(errors.ErrConfigParse, "link.dir_mode must be a permission mode, got %o", uint32(c.Link.DirMode))
	}
	return nil
}

// envProvider reads the HEIMWEH_* variables of environment. The process
// environment goes through koanf's env provider; any other one is
// flattened into a confmap.
func envProvider(environment paths.Environment) koanf.Provider {
	if _, ok := environment.(paths.OSEnvironment); ok {
		return env.Provider(EnvPrefix, ".", envKey)
	}

	values := map[string]interface{}{}
	for _, kv := range environment.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		values[envKey(key)] = value
	}
	return confmap.Provider(values, ".")
}

// envKey maps HEIMWEH_CASTLES__DIR to castles.dir
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// stringToFileModeHookFunc parses octal strings such as "0755" into
// os.FileMode
func stringToFileModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(os.FileMode(0)) {
			return data, nil
		}
		mode, err := strconv.ParseUint(data.(string), 8, 32)
		if err != nil {
			return nil, err
		}
		return os.FileMode(mode), nil
	}
}
