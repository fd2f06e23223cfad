package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

// Defaults applied to optional fields after parsing
const (
	DefaultPlanningWeeks  = 12
	DefaultDashboardWeeks = 2
	DefaultScenarioID     = "scenario-base"
	DefaultAffinity       = "home_pod"
	DefaultSubjectPrefix  = "[QA Planner]"
)

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Backend         string `yaml:"backend" validate:"required,oneof=postgres sheets"`
	PostgresURL     string `yaml:"postgresURL,omitempty" validate:"required_if=Backend postgres"`
	DatabaseSheetID string `yaml:"databaseSheetID,omitempty" validate:"required_if=Backend sheets"`
}

// GroupingConfig controls how the roster is grouped
type GroupingConfig struct {
	Affinity string              `yaml:"affinity,omitempty" validate:"omitempty,oneof=home_pod allocations"`
	LeadPods map[string][]string `yaml:"leadPods,omitempty" validate:"omitempty,dive,keys,required,endkeys,min=1"`
}

// PodsConfig overrides pod display codes and colors
type PodsConfig struct {
	Prefixes map[string]string `yaml:"prefixes,omitempty" validate:"omitempty,dive,keys,required,endkeys,required,max=3"`
	Colors   map[string]string `yaml:"colors,omitempty" validate:"omitempty,dive,hexcolor"`
}

// DigestConfig configures the risk digest email
type DigestConfig struct {
	Recipients    []string `yaml:"recipients,omitempty" validate:"omitempty,dive,email"`
	Schedule      string   `yaml:"schedule,omitempty"`
	SubjectPrefix string   `yaml:"subjectPrefix,omitempty"`
	GmailUserID   string   `yaml:"gmailUserID,omitempty" validate:"required_with=Recipients"`
	GmailSender   string   `yaml:"gmailSender,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Store             StoreConfig    `yaml:"store"`
	PlanningWeeks     int            `yaml:"planningWeeks,omitempty" validate:"min=1,max=52"`
	DashboardWeeks    int            `yaml:"dashboardWeeks,omitempty" validate:"min=1,ltefield=PlanningWeeks"`
	DefaultScenarioID string         `yaml:"defaultScenarioID,omitempty" validate:"required"`
	Grouping          GroupingConfig `yaml:"grouping,omitempty"`
	Pods              PodsConfig     `yaml:"pods,omitempty"`
	RosterSheetID     string         `yaml:"rosterSheetID,omitempty"`
	Digest            DigestConfig   `yaml:"digest,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" will look for "qa_planner_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(envFileName("qa_planner_config", env, ".yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads, defaults and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset optional fields
func ApplyDefaults(cfg *Config) {
	if cfg.PlanningWeeks == 0 {
		cfg.PlanningWeeks = DefaultPlanningWeeks
	}
	if cfg.DashboardWeeks == 0 {
		cfg.DashboardWeeks = DefaultDashboardWeeks
	}
	if cfg.DefaultScenarioID == "" {
		cfg.DefaultScenarioID = DefaultScenarioID
	}
	if cfg.Grouping.Affinity == "" {
		cfg.Grouping.Affinity = DefaultAffinity
	}
	if cfg.Digest.SubjectPrefix == "" {
		cfg.Digest.SubjectPrefix = DefaultSubjectPrefix
	}
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Digest.Schedule != "" {
		if _, err := ParseSchedule(cfg.Digest.Schedule); err != nil {
			return fmt.Errorf("invalid rrule in digest.schedule: %w", err)
		}
	}

	return nil
}

// ParseSchedule parses an RRULE schedule. Rules that skip periods
// (INTERVAL > 1) must set DTSTART, which fixes the weeks they fall on.
func ParseSchedule(schedule string) (*rrule.RRule, error) {
	rule, err := rrule.StrToRRule(schedule)
	if err != nil {
		return nil, err
	}
	if rule.OrigOptions.Interval > 1 && rule.OrigOptions.Dtstart.IsZero() {
		return nil, fmt.Errorf("INTERVAL=%d requires DTSTART", rule.OrigOptions.Interval)
	}
	return rule, nil
}

// NeedsGoogle returns true if any configured feature talks to Google APIs
func (c *Config) NeedsGoogle() bool {
	return c.Store.Backend == BackendSheets || c.RosterSheetID != "" || len(c.Digest.Recipients) > 0
}

// envFileName inserts the env before the extension: ("qa_planner_config", "test", ".yaml") -> "qa_planner_config.test.yaml"
func envFileName(base, env, ext string) string {
	if env == "" {
		return base + ext
	}
	return base + "." + env + ext
}

// findFile looks for fileName in the working directory, then the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
