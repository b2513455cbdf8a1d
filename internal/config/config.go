package config

import (
	"fmt"
	"github.com/gostonefire/chainmap/logger"
	"github.com/spf13/viper"
	"sort"
	"strings"
)

const (
	VK_LOG_LEVEL        = "log.log_level"
	VK_LOG_FILE         = "log.log_file"
	VK_SERVER_HOST      = "server.host"
	VK_SERVER_PORT      = "server.port"
	VK_INITIAL_CAPACITY = "table.initial_capacity"
	VK_BUCKET_ALG       = "table.bucket_algorithm"
	VK_SIPHASH_SALT     = "table.siphash_salt"
	VK_PPROF_ADDR       = "debug.pprof_addr"

	DEFAULT_SERVER_HOST = "localhost"
	DEFAULT_SERVER_PORT = "2420"
	DEFAULT_BUCKET_ALG  = BucketAlgModulo

	BucketAlgModulo  = "modulo"
	BucketAlgXXHash  = "xxhash"
	BucketAlgSipHash = "siphash"
)

// VConfig - Read access to configuration values, satisfied by *viper.Viper
type VConfig interface {
	Get(key string) interface{}
	GetString(key string) string
	GetInt64(key string) int64
	IsSet(key string) bool
}

// envs maps configuration keys to the environment variables overriding them
var envs = map[string]string{
	VK_LOG_LEVEL:        "CHM_LOGLEVEL",
	VK_LOG_FILE:         "CHM_LOGFILE",
	VK_SERVER_HOST:      "CHM_HOST",
	VK_SERVER_PORT:      "CHM_PORT",
	VK_INITIAL_CAPACITY: "CHM_INITIAL_CAPACITY",
	VK_BUCKET_ALG:       "CHM_BUCKET_ALG",
	VK_SIPHASH_SALT:     "CHM_SIPHASH_SALT",
	VK_PPROF_ADDR:       "CHM_PPROF_ADDR",
}

// NewViperConf - Returns the demo configuration. Values come from, in falling priority, the environment,
// the TOML file cfgFile (skipped when empty) and built-in defaults.
//
// It returns:
//   - cfg is the loaded configuration
//   - err is set if cfgFile can not be read, or a value fails validation
func NewViperConf(cfgFile string) (cfg VConfig, err error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	for key, env := range envs {
		if err = v.BindEnv(key, env); err != nil {
			err = fmt.Errorf("error while binding env %s: %w", env, err)
			return
		}
	}

	if strings.TrimSpace(cfgFile) != "" {
		v.SetConfigFile(cfgFile)
		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("error while reading config file %s: %w", cfgFile, err)
			return
		}
	}

	if err = validate(v); err != nil {
		return
	}

	cfg = v
	return
}

func setDefaults(v *viper.Viper) {
	// Plain LOGLEVEL sets the default, CHM_LOGLEVEL and the config file override it
	v.SetDefault(VK_LOG_LEVEL, ilog.LevelName(ilog.GetEnvLOGLEVEL()))
	v.SetDefault(VK_LOG_FILE, "")
	v.SetDefault(VK_SERVER_HOST, DEFAULT_SERVER_HOST)
	v.SetDefault(VK_SERVER_PORT, DEFAULT_SERVER_PORT)
	v.SetDefault(VK_INITIAL_CAPACITY, 0)
	v.SetDefault(VK_BUCKET_ALG, DEFAULT_BUCKET_ALG)
	v.SetDefault(VK_SIPHASH_SALT, "")
	v.SetDefault(VK_PPROF_ADDR, "")
}

func validate(v *viper.Viper) error {
	if c := v.GetInt64(VK_INITIAL_CAPACITY); c < 0 {
		return fmt.Errorf("%s must not be negative, got %d", VK_INITIAL_CAPACITY, c)
	}

	switch alg := strings.ToLower(v.GetString(VK_BUCKET_ALG)); alg {
	case BucketAlgModulo, BucketAlgXXHash:
	case BucketAlgSipHash:
		if salt := v.GetString(VK_SIPHASH_SALT); salt != "" && len(salt) != 16 {
			return fmt.Errorf("%s must be 16 bytes, got %d", VK_SIPHASH_SALT, len(salt))
		}
	default:
		return fmt.Errorf("unknown %s '%s'", VK_BUCKET_ALG, alg)
	}

	return nil
}

// PrintConfigs - Returns every known key with its effective value, one "key='value'" line each, sorted by key
func PrintConfigs(cfg VConfig) []string {
	lines := make([]string, 0, len(envs))
	for key := range envs {
		lines = append(lines, fmt.Sprintf("%s='%v'", key, cfg.Get(key)))
	}
	sort.Strings(lines)
	return lines
}
