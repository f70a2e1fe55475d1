package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	Formats       = []string{"auto", "json", "table"}
	levels        = []string{"debug", "info", "warn", "error"}
	consoleOutput = []string{"stderr", "stdout"}
)

type LoggerConfigs struct {
	ConsoleLevel  string `toml:"console_level"`
	ConsoleOutput string `toml:"console_output"`
	FileLevel     string `toml:"file_level"`
	FileOutput    string `toml:"file_output"`
}

// Connection is a named descriptor. DSN values of the form ${VAR} are read
// from the environment.
type Connection struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type Config struct {
	Driver      string                 `toml:"driver"`
	Format      string                 `toml:"format"`
	MaxWidth    int                    `toml:"max_width"`
	Timeout     time.Duration          `toml:"timeout"`
	Logging     LoggerConfigs          `toml:"logger"`
	Connections map[string]*Connection `toml:"connections"`
}

func NewConfig() *Config {
	return &Config{
		Driver:   "postgres",
		Format:   "auto",
		MaxWidth: 60,
		Logging: LoggerConfigs{
			ConsoleLevel:  "warn",
			ConsoleOutput: "stderr",
		},
		Connections: map[string]*Connection{},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing .env
// file or an empty path is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	conf := NewConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("error loading config TOML: %w", err)
		}
	}

	for _, conn := range conf.Connections {
		conn.DSN = fromEnv(conn.DSN)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format %q is not one of %v", c.Format, Formats))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if !slices.Contains(consoleOutput, c.Logging.ConsoleOutput) {
		errs = append(errs, fmt.Errorf("%s is not in valid console outputs %v", c.Logging.ConsoleOutput, consoleOutput))
	}
	for _, lvl := range []string{c.Logging.ConsoleLevel, c.Logging.FileLevel} {
		if lvl != "" && !slices.Contains(levels, strings.ToLower(lvl)) {
			errs = append(errs, fmt.Errorf("log level %q is not one of %v", lvl, levels))
		}
	}

	return errors.Join(errs...)
}

// Resolve returns the driver and DSN for descriptor. A descriptor naming a
// configured connection is replaced by that connection's DSN; anything else
// is returned verbatim with the default driver.
func (c *Config) Resolve(descriptor string) (driver, dsn string) {
	conn, ok := c.Connections[descriptor]
	if !ok {
		return c.Driver, descriptor
	}

	driver = conn.Driver
	if driver == "" {
		driver = c.Driver
	}
	return driver, conn.DSN
}

func fromEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
		return os.Getenv(envVar)
	}
	return value
}
