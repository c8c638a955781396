package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		Debug            bool
		TestMode         bool
		SecretKey        string
		WorkDir          string
		RollbarToken     string
		SendgridApiKey   string
		DefaultFromEmail mail.Address
		Seed             bool

		Server  ServerConfig
		Session SessionConfig
		Nats    NatsConfig
		Tracker TrackerConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	SessionConfig struct {
		Backend   string // memory | redis
		RedisAddr string
		RedisDB   int
	}

	NatsConfig struct {
		URL     string // events are only logged when empty
		Subject string
	}

	TrackerConfig struct {
		Interval time.Duration
		Jitter   float64
	}
)

// NewConfig reads the configuration from defaults, `config/.env.<env>` and the environment.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("build", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("secretKey", "k2c8-shu(le3$+91=qa&xovh7(f!p)#*m4(#lz2^$bedn9wpe")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "Shule <noreply@localhost>")
	v.SetDefault("seed", true)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.redisAddr", "localhost:6379")
	v.SetDefault("session.redisDB", 0)
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "shule.events")
	v.SetDefault("tracker.interval", 5*time.Second)
	v.SetDefault("tracker.jitter", 0.0005)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	workDir, err := Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "finding project root")
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing defaultFromEmail")
	}

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		SecretKey:        v.GetString("secretKey"),
		WorkDir:          workDir,
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		DefaultFromEmail: *from,
		Seed:             v.GetBool("seed"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Address:            v.GetString("server.address"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Session: SessionConfig{
			Backend:   strings.ToLower(v.GetString("session.backend")),
			RedisAddr: v.GetString("session.redisAddr"),
			RedisDB:   v.GetInt("session.redisDB"),
		},
		Nats: NatsConfig{
			URL:     v.GetString("nats.url"),
			Subject: v.GetString("nats.subject"),
		},
		Tracker: TrackerConfig{
			Interval: v.GetDuration("tracker.interval"),
			Jitter:   v.GetFloat64("tracker.jitter"),
		},
	}, nil
}

// NewTestConfig returns the configuration used by tests; it never reads the environment.
func NewTestConfig() *Config {
	return &Config{
		AppName:          "Shule",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		SecretKey:        "secret",
		DefaultFromEmail: mail.Address{Name: "Shule", Address: "noreply@localhost"},
		Server: ServerConfig{
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
		},
		Session: SessionConfig{Backend: "memory"},
		Nats:    NatsConfig{Subject: "shule.events"},
		Tracker: TrackerConfig{Interval: 5 * time.Second, Jitter: 0.0005},
	}
}
