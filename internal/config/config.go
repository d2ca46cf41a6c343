// Package config loads readmequest settings.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults ([Default])
//  2. a TOML file (readmequest.toml, or the path given with --config)
//  3. environment variables prefixed with READMEQUEST_ (a .env file in the
//     working directory is loaded into the environment by the command)
//  4. GITHUB_TOKEN, when READMEQUEST_GITHUB_TOKEN is unset
//
// Command-line flags are applied by the caller after [Load] returns.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/chious/readmequest/pkg/errors"
	"github.com/chious/readmequest/pkg/experience"
	"github.com/chious/readmequest/pkg/integrations/github"
	"github.com/chious/readmequest/pkg/progress"
	"github.com/chious/readmequest/pkg/readme"
	"github.com/chious/readmequest/pkg/skills"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "readmequest.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "READMEQUEST_"

	DefaultAccount = "chious"
	DefaultReadme  = "README.md"
)

// Config holds all settings for a run.
type Config struct {
	Readme       string `toml:"readme" env:"README" validate:"required"`
	Account      string `toml:"account" env:"ACCOUNT" validate:"required,max=39"`
	ExpCap       int    `toml:"exp_cap" env:"EXP_CAP" validate:"gt=0"`
	BarWidth     int    `toml:"bar_width" env:"BAR_WIDTH" validate:"gte=1,lte=100"`
	MaxTableRows int    `toml:"max_table_rows" env:"MAX_TABLE_ROWS" validate:"gte=1"`
	NameWidth    int    `toml:"name_width" env:"NAME_WIDTH" validate:"gte=1,lte=64"`
	SectionID    string `toml:"section_id" env:"SECTION_ID" validate:"required"`
	Timezone     string `toml:"timezone" env:"TIMEZONE"` // IANA name; empty means local
	CacheDir     string `toml:"cache_dir" env:"CACHE_DIR"`

	GitHub GitHub `toml:"github" envPrefix:"GITHUB_"`
}

// GitHub configures the repository listing client.
type GitHub struct {
	Token           string        `toml:"token" env:"TOKEN"`
	BaseURL         string        `toml:"base_url" env:"BASE_URL" validate:"required,url"`
	Timeout         time.Duration `toml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	PerPage         int           `toml:"per_page" env:"PER_PAGE" validate:"gte=1,lte=100"`
	MaxPages        int           `toml:"max_pages" env:"MAX_PAGES" validate:"gte=1,lte=100"`
	CacheTTL        time.Duration `toml:"cache_ttl" env:"CACHE_TTL" validate:"gte=0"`
	Retries         int           `toml:"retries" env:"RETRIES" validate:"gte=0,lte=10"`
	ExcludeForks    bool          `toml:"exclude_forks" env:"EXCLUDE_FORKS"`
	ExcludeArchived bool          `toml:"exclude_archived" env:"EXCLUDE_ARCHIVED"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Readme:       DefaultReadme,
		Account:      DefaultAccount,
		ExpCap:       experience.DefaultCap,
		BarWidth:     progress.DefaultBarWidth,
		MaxTableRows: skills.DefaultMaxRows,
		NameWidth:    skills.DefaultNameWidth,
		SectionID:    readme.DefaultSectionID,
		GitHub: GitHub{
			BaseURL:  github.DefaultBaseURL,
			Timeout:  10 * time.Second,
			PerPage:  github.MaxPerPage,
			MaxPages: github.DefaultMaxPages,
			CacheTTL: github.DefaultCacheTTL,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path reads DefaultFile if it exists; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	file, explicit := path, path != ""
	if !explicit {
		file = DefaultFile
	}
	if err := decodeFile(file, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse environment")
	}
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "validate config")
	}
	if err := apperrors.ValidateAccountName(c.Account); err != nil {
		return err
	}
	if err := apperrors.ValidateReadmePath(c.Readme); err != nil {
		return err
	}
	if err := apperrors.ValidateURL(c.GitHub.BaseURL); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "github.base_url")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Empty selects the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "timezone %q", c.Timezone)
	}
	return loc, nil
}

// Attempts is the number of tries for a retryable request.
func (g GitHub) Attempts() int { return g.Retries + 1 }
