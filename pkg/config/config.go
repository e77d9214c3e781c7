package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/subosito/gotenv"

	"github.com/zenithgo/zenith/pkg/db"
	"github.com/zenithgo/zenith/pkg/logger"
	"github.com/zenithgo/zenith/pkg/redis"
)

// App holds application-level settings.
type App struct {
	Name    string `env:"APP_NAME" envDefault:"zenith"`
	URL     string `env:"APP_URL" envDefault:"http://localhost:8080"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Addr    string `env:"APP_ADDR" envDefault:":8080"`
	Debug   bool   `env:"APP_DEBUG" envDefault:"false"`
	// Key seeds encryption, see security.KeyFromSecret.
	Key string `env:"APP_KEY"`
}

// IsProduction reports whether APP_ENV is "production".
func (a App) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// Config is the standard configuration of a zenith application.
type Config struct {
	App   App
	DB    db.Config
	Log   logger.Config
	Redis redis.Config
}

// Option configures Load.
type Option func(*options)

type options struct {
	files   []string
	environ map[string]string
}

// WithFiles replaces the default ".env" with the given dotenv files.
// Missing files are skipped; later files override earlier ones.
func WithFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithEnvironment uses vars instead of the process environment.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environ = vars
	}
}

// Load reads the standard Config.
func Load(opts ...Option) (Config, error) {
	return LoadAs[Config](opts...)
}

// LoadAs parses any struct with env tags. Values come from dotenv files
// overlaid by the process environment, so real variables always win.
// The process environment itself is never modified.
func LoadAs[T any](opts ...Option) (T, error) {
	o := options{files: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	vars, err := readFiles(o.files)
	if err != nil {
		var zero T
		return zero, err
	}
	if o.environ != nil {
		maps.Copy(vars, o.environ)
	} else {
		maps.Copy(vars, env.ToMap(os.Environ()))
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{Environment: vars})
	if err != nil {
		return cfg, errors.Join(ErrParse, err)
	}
	return cfg, nil
}

func readFiles(files []string) (map[string]string, error) {
	vars := make(map[string]string)
	for _, name := range files {
		f, err := os.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrReadFile, err)
		}
		parsed, err := gotenv.StrictParse(f)
		_ = f.Close()
		if err != nil {
			return nil, errors.Join(ErrReadFile, err)
		}
		maps.Copy(vars, parsed)
	}
	return vars, nil
}
