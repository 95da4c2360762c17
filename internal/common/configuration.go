/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package common

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config represents the complete configuration of the analytics CLI.
// It combines database settings, query assembly settings and logging.
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres" json:"postgres"` // PostgreSQL database settings
	Query    QueryConfig    `mapstructure:"query" json:"query"`       // Query assembly settings
	Log      LogConfig      `mapstructure:"log" json:"log"`           // Logging settings
}

// PostgresConfig contains PostgreSQL database connection parameters.
type PostgresConfig struct {
	Host                   string `mapstructure:"host" json:"host"`                                     // Database host address
	Port                   int    `mapstructure:"port" json:"port"`                                     // Database port (default: 5432)
	User                   string `mapstructure:"user" json:"user"`                                     // Database username
	Password               string `mapstructure:"password" json:"password"`                             // Database password
	DBName                 string `mapstructure:"dbname" json:"dbname"`                                 // Database name
	SSLMode                string `mapstructure:"sslmode" json:"sslmode"`                               // lib/pq sslmode
	MaxOpenConnections     int    `mapstructure:"maxOpenConnections" json:"maxOpenConnections"`         // Maximum open connections
	MaxIdleConnections     int    `mapstructure:"maxIdleConnections" json:"maxIdleConnections"`         // Maximum idle connections
	ConnMaxLifetimeMinutes int    `mapstructure:"connMaxLifetimeMinutes" json:"connMaxLifetimeMinutes"` // Connection lifetime in minutes
}

// QueryConfig contains the settings applied when statements are assembled.
type QueryConfig struct {
	DefaultPageSize int         `mapstructure:"defaultPageSize" json:"defaultPageSize"`
	MaxPageSize     int         `mapstructure:"maxPageSize" json:"maxPageSize"`
	Aliases         AliasConfig `mapstructure:"aliases" json:"aliases"`
}

// AliasConfig holds the SQL aliases used by the correlated subquery templates.
type AliasConfig struct {
	TrackedEntity      string `mapstructure:"trackedEntity" json:"trackedEntity"`
	Enrollment         string `mapstructure:"enrollment" json:"enrollment"`
	Event              string `mapstructure:"event" json:"event"`
	EnrollmentSubquery string `mapstructure:"enrollmentSubquery" json:"enrollmentSubquery"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`   // zerolog level name
	Pretty bool   `mapstructure:"pretty" json:"pretty"` // console output instead of JSON
}

// LoadConfig loads the configuration from a YAML file and environment variables.
//
// Precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (if provided)
// 3. Default values (lowest priority)
//
// Environment variables use underscore notation (e.g., POSTGRES_HOST for postgres.host).
//
// Example:
//
//	config, err := LoadConfig("config/analytics.yaml")
//	if err != nil {
//	    log.Fatal().Err(err).Msg("failed to load config")
//	}
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		log.Debug().Str("path", configPath).Msg("loading config from file")
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Debug().Msg("no config file provided, loading from environment variables only")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults configures default values that let the CLI run against a local
// PostgreSQL without a configuration file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "dhis")
	v.SetDefault("postgres.password", "dhis")
	v.SetDefault("postgres.dbname", "dhis2")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxOpenConnections", 10)
	v.SetDefault("postgres.maxIdleConnections", 5)
	v.SetDefault("postgres.connMaxLifetimeMinutes", 5)

	v.SetDefault("query.defaultPageSize", 50)
	v.SetDefault("query.maxPageSize", 1000)
	v.SetDefault("query.aliases.trackedEntity", "t_1")
	v.SetDefault("query.aliases.enrollment", "en")
	v.SetDefault("query.aliases.event", "ev")
	v.SetDefault("query.aliases.enrollmentSubquery", `"enrollmentSubqueryAlias"`)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

func validateConfig(cfg *Config) error {
	if cfg.Query.DefaultPageSize <= 0 {
		return NewErrBadRequest("CONFIG-QUERY-PAGESIZE defaultPageSize must be positive")
	}
	if cfg.Query.MaxPageSize < cfg.Query.DefaultPageSize {
		return NewErrBadRequest("CONFIG-QUERY-MAXPAGESIZE maxPageSize must not be smaller than defaultPageSize")
	}
	a := cfg.Query.Aliases
	if a.TrackedEntity == "" || a.Enrollment == "" || a.Event == "" || a.EnrollmentSubquery == "" {
		return NewErrBadRequest("CONFIG-QUERY-ALIASES all query aliases must be set")
	}
	return nil
}

// DSN builds the lib/pq connection URL for the configured database. User and
// password are escaped, so they may contain URL delimiters.
func (c PostgresConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// PrintConfiguration logs the configuration on logger with database
// credentials redacted.
func PrintConfiguration(cfg *Config, logger zerolog.Logger) {
	cfgCopy := *cfg

	if cfg.Postgres.Host != "" {
		cfgCopy.Postgres.Host = "****"
		cfgCopy.Postgres.User = "****"
		cfgCopy.Postgres.Password = "****"
	}

	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	configJSON, err := json.MarshalIndent(cfgCopy, "", "  ")
	if err != nil {
		logger.Warn().Err(err).Msg("unable to marshal configuration to JSON")
		return
	}

	logger.Debug().RawJSON("config", configJSON).Msg("loaded configuration")
}
