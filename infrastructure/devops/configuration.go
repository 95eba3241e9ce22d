package devops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Seed     SeedConfig     `yaml:"seed"`
	Notify   NotifyConfig   `yaml:"notify"`
	Export   ExportConfig   `yaml:"export"`
}

type ServerConfig struct {
	Port         int      `yaml:"port"`
	BasePath     string   `yaml:"basePath"`
	Timezone     string   `yaml:"timezone"`
	AllowOrigins []string `yaml:"allowOrigins"`
	// ExposeErrors adds the underlying error to 500 responses.
	ExposeErrors bool          `yaml:"exposeErrors"`
	Timeout      time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	MaxConnection int    `yaml:"maxConnection"`
	LogLevel      string `yaml:"logLevel"`
	// SSMParameter names a SecureString holding a YAML list of DBEntry.
	SSMParameter string `yaml:"ssmParameter"`
	SSMEntry     string `yaml:"ssmEntry"`
}

type AuthConfig struct {
	JWTSecret    string        `yaml:"jwtSecret"`
	TokenTTL     time.Duration `yaml:"tokenTTL"`
	PasswordCost int           `yaml:"passwordCost"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SeedConfig struct {
	AdminName     string `yaml:"adminName"`
	AdminEmail    string `yaml:"adminEmail"`
	AdminPassword string `yaml:"adminPassword"`
}

type NotifyConfig struct {
	SlackToken        string `yaml:"slackToken"`
	SlackInfoChannel  string `yaml:"slackInfoChannel"`
	SlackErrorChannel string `yaml:"slackErrorChannel"`
	SESFrom           string `yaml:"sesFrom"`
}

type ExportConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         5000,
			BasePath:     "/api",
			Timezone:     "Local",
			AllowOrigins: []string{"*"},
			ExposeErrors: true,
			Timeout:      30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:        "sqlite",
			DSN:           "hrportal.db",
			MaxConnection: 10,
			LogLevel:      "warn",
			SSMEntry:      "hrportal",
		},
		Auth: AuthConfig{
			PasswordCost: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: SeedConfig{
			AdminName:     "Abdur Rehman",
			AdminEmail:    "abdurrehman@gmail.com",
			AdminPassword: "abdurrehman1",
		},
		Export: ExportConfig{
			Prefix: "attendance/",
		},
	}
}

// LoadConfig applies defaults, then the YAML file at path (or CONFIG_PATH, or
// ./config.yaml when present), then environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Server.Port = v
	}
	setString("TZ_NAME", &cfg.Server.Timezone)
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = strings.Split(v, ",")
	}
	if v, err := strconv.ParseBool(os.Getenv("EXPOSE_ERRORS")); err == nil {
		cfg.Server.ExposeErrors = v
	}

	setString("DB_DRIVER", &cfg.Database.Driver)
	setString("DSN", &cfg.Database.DSN)
	setString("DB_SSM_PARAMETER", &cfg.Database.SSMParameter)

	setString("JWT_SECRET", &cfg.Auth.JWTSecret)
	if v, err := time.ParseDuration(os.Getenv("TOKEN_TTL")); err == nil {
		cfg.Auth.TokenTTL = v
	}

	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)

	setString("SEED_ADMIN_NAME", &cfg.Seed.AdminName)
	setString("SEED_ADMIN_EMAIL", &cfg.Seed.AdminEmail)
	setString("SEED_ADMIN_PASSWORD", &cfg.Seed.AdminPassword)

	setString("SLACK_BOT_TOKEN", &cfg.Notify.SlackToken)
	setString("SLACK_INFO_CHANNEL", &cfg.Notify.SlackInfoChannel)
	setString("SLACK_ERROR_CHANNEL", &cfg.Notify.SlackErrorChannel)
	setString("SES_FROM", &cfg.Notify.SESFrom)

	setString("EXPORT_BUCKET", &cfg.Export.Bucket)
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret (JWT_SECRET) is required")
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver must be mysql or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" && c.Database.SSMParameter == "" {
		return errors.New("database.dsn or database.ssmParameter is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves server.timezone; "Local" or empty is the process zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" || c.Server.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid server.timezone %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}

type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (db DBEntry) GetDSN() string {
	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", db.Username, db.Password, host, db.Name)
}

// ParseDBEntries decodes the YAML list stored in the SSM parameter.
func ParseDBEntries(value string) ([]DBEntry, error) {
	var parsed []DBEntry
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return parsed, nil
}

// ResolveDSN fills Database.DSN from SSM when a parameter is configured.
func (c *Config) ResolveDSN(ctx context.Context) error {
	if c.Database.SSMParameter == "" {
		return nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.Database.SSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get parameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return fmt.Errorf("parameter %s is empty", c.Database.SSMParameter)
	}

	entries, err := ParseDBEntries(*out.Parameter.Value)
	if err != nil {
		return err
	}
	entry := utils.Find(entries, func(e DBEntry) bool {
		return strings.EqualFold(e.Name, c.Database.SSMEntry)
	})
	if entry != nil {
		c.Database.Driver = "mysql"
		c.Database.DSN = entry.GetDSN()
		return nil
	}
	return fmt.Errorf("database %q not found in parameter %s", c.Database.SSMEntry, c.Database.SSMParameter)
}
