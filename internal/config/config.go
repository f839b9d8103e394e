package config

import (
	"flag"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// localHosts are hostnames that point at a backend on the developer's machine.
// 10.0.2.2 is the Android emulator alias for the host loopback.
var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"10.0.2.2":  true,
}

// Config is the resolved client configuration. It is built once by Load and
// passed explicitly to the transport, retry and fallback layers.
type Config struct {
	Environment     string
	BaseURL         string
	IsLocalTarget   bool
	FallbackEnabled bool
	LogAPICalls     bool
	RetryAttempts   int
	RetryDelay      time.Duration
	Timeout         time.Duration
	RateLimit       float64
	UserAgent       string

	RedisEnabled bool
	RedisAddr    string
	SnapshotKey  string
	SnapshotTTL  time.Duration
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("environments.development.base_url", "http://localhost:5000/api")
	viper.SetDefault("environments.production.base_url", "https://api.eventsphere.app/api")
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("api.retry_attempts", 3)
	viper.SetDefault("api.retry_delay", "1s")
	viper.SetDefault("api.user_agent", "eventsphere-client/1.0")
	viper.SetDefault("features.enable_mock_fallback", true)
	viper.SetDefault("features.log_api_calls", true)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("snapshot.key", "eventsphere:events:snapshot")
	viper.SetDefault("snapshot.ttl", "24h")
	viper.SetDefault("server.port", "5000")
}

func initConfig() {
	once.Do(func() {
		_ = godotenv.Load()
		setDefaults()
		viper.SetEnvPrefix("eventsphere")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Warnw("Project root not found, using defaults", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Warnw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Warnw("Error merging test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load resolves the configuration from config.yaml, .env and EVENTSPHERE_*
// environment variables.
func Load() *Config {
	initConfig()
	baseURL := GetBaseURL()
	return &Config{
		Environment:     GetEnvironment(),
		BaseURL:         baseURL,
		IsLocalTarget:   IsLocalURL(baseURL),
		FallbackEnabled: viper.GetBool("features.enable_mock_fallback"),
		LogAPICalls:     viper.GetBool("features.log_api_calls"),
		RetryAttempts:   viper.GetInt("api.retry_attempts"),
		RetryDelay:      getDuration("api.retry_delay", time.Second),
		Timeout:         getDuration("api.timeout", 10*time.Second),
		RateLimit:       viper.GetFloat64("api.rate_limit"),
		UserAgent:       viper.GetString("api.user_agent"),
		RedisEnabled:    viper.GetBool("redis.enabled"),
		RedisAddr:       GetRedisAddr(),
		SnapshotKey:     viper.GetString("snapshot.key"),
		SnapshotTTL:     getDuration("snapshot.ttl", 24*time.Hour),
	}
}

// Redacted returns a view safe for logging
func (c *Config) Redacted() map[string]any {
	return map[string]any{
		"environment":     c.Environment,
		"baseURL":         c.BaseURL,
		"localTarget":     c.IsLocalTarget,
		"fallbackEnabled": c.FallbackEnabled,
		"retryAttempts":   c.RetryAttempts,
		"retryDelay":      c.RetryDelay.String(),
		"timeout":         c.Timeout.String(),
		"redisEnabled":    c.RedisEnabled,
	}
}

func GetEnvironment() string {
	initConfig()
	env := strings.ToLower(strings.TrimSpace(viper.GetString("app.environment")))
	if env == "" {
		return "development"
	}
	return env
}

// GetBaseURL returns api.base_url when set, otherwise the base URL of the
// active environment.
func GetBaseURL() string {
	initConfig()
	if u := strings.TrimSpace(viper.GetString("api.base_url")); u != "" {
		return u
	}
	u := viper.GetString("environments." + GetEnvironment() + ".base_url")
	if u == "" {
		return viper.GetString("environments.development.base_url")
	}
	return u
}

// IsLocalURL reports whether rawURL targets a backend on the local machine.
func IsLocalURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if localHosts[strings.ToLower(host)] {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

// GetServerTimeoutDuration parses server.<key>, falling back to def.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	return getDuration("server."+key, def)
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// SetLoggerForTest replaces the shared logger, e.g. with zap.NewNop().Sugar().
func SetLoggerForTest(l *zap.SugaredLogger) {
	loggerOnce.Do(func() {})
	logger = l
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	return getDuration("rate_limiter.cleanup_timeout", 3*time.Minute)
}

// GetGlobalRateLimiterConfig returns the per-minute rate and burst for the mock server's global limiter.
func GetGlobalRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.global.rate")
	if rate == 0 {
		rate = 60
	}
	burst = viper.GetInt("rate_limiter.global.burst")
	if burst == 0 {
		burst = 30
	}
	return
}

// GetParamRateLimiterConfig returns the per-minute rate and burst for the mock server's per-param limiter.
func GetParamRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.param.rate")
	if rate == 0 {
		rate = 20
	}
	burst = viper.GetInt("rate_limiter.param.burst")
	if burst == 0 {
		burst = 10
	}
	return
}

func getDuration(key string, def time.Duration) time.Duration {
	initConfig()
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return def
	}
	return dur
}
