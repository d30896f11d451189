package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server            ServerConfig            `toml:"server"`
	Database          DatabaseConfig          `toml:"database"`
	Network           NetworkConfig           `toml:"network"`
	Rates             RatesConfig             `toml:"rates"`
	Skills            SkillsConfig            `toml:"skills"`
	ExploitPrevention ExploitPreventionConfig `toml:"exploit_prevention"`
	Data              DataConfig              `toml:"data"`
	Logging           LoggingConfig           `toml:"logging"`
}

type ServerConfig struct {
	Name     string `toml:"name"`
	Language string `toml:"language"` // BCP 47 tag used for notifications
	Demo     bool   `toml:"demo"`     // drive a scripted player through the skills
}

// DatabaseConfig configures skill profile persistence. An empty DSN keeps
// profiles in memory only.
type DatabaseConfig struct {
	DSN               string        `toml:"dsn"`
	MaxOpenConns      int           `toml:"max_open_conns"`
	MaxIdleConns      int           `toml:"max_idle_conns"`
	ConnMaxLifetime   time.Duration `toml:"conn_max_lifetime"`
	SaveIntervalTicks int           `toml:"save_interval_ticks"`
}

type NetworkConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

type RatesConfig struct {
	XPRate float64 `toml:"xp_rate"`
}

// SkillsConfig holds the tunables shared by every ability. Per-ability curves
// live in the YAML skill table.
type SkillsConfig struct {
	ActivationChance      int           `toml:"activation_chance"`       // roll denominator
	LuckyActivationChance int           `toml:"lucky_activation_chance"` // denominator with the lucky perk
	TrackerPollTicks      uint64        `toml:"tracker_poll_ticks"`
	RespawnCooldown       time.Duration `toml:"respawn_cooldown"`
	Acrobatics            SkillToggle   `toml:"acrobatics"`
	Archery               SkillToggle   `toml:"archery"`
}

// SkillToggle enables a skill against players (and tamed pets) or mobs.
type SkillToggle struct {
	PVP bool `toml:"pvp"`
	PVE bool `toml:"pve"`
}

type ExploitPreventionConfig struct {
	Enabled  bool    `toml:"enabled"`
	MaxTries int     `toml:"max_tries"`
	Radius   float64 `toml:"radius"`
}

type DataConfig struct {
	SkillTable string `toml:"skill_table"`
	ScriptsDir string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Skills.ActivationChance <= 0 || c.Skills.LuckyActivationChance <= 0 {
		return fmt.Errorf("skills.activation_chance and skills.lucky_activation_chance must be positive")
	}
	if c.Network.TickRate <= 0 {
		return fmt.Errorf("network.tick_rate must be positive")
	}
	if c.ExploitPrevention.Radius < 0 {
		return fmt.Errorf("exploit_prevention.radius must not be negative")
	}
	return nil
}

// Defaults returns the built-in configuration. Load overlays the TOML file on
// top of it.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:     "skills",
			Language: "en",
		},
		Database: DatabaseConfig{
			MaxOpenConns:      10,
			MaxIdleConns:      2,
			ConnMaxLifetime:   30 * time.Minute,
			SaveIntervalTicks: 6000, // 5 minutes at 50ms
		},
		Network: NetworkConfig{
			TickRate: 50 * time.Millisecond, // 20 ticks per second
		},
		Rates: RatesConfig{
			XPRate: 1.0,
		},
		Skills: SkillsConfig{
			ActivationChance:      100,
			LuckyActivationChance: 75,
			TrackerPollTicks:      12000, // 10 minutes of game time
			RespawnCooldown:       5 * time.Second,
			Acrobatics:            SkillToggle{PVP: true, PVE: true},
			Archery:               SkillToggle{PVP: true, PVE: true},
		},
		ExploitPrevention: ExploitPreventionConfig{
			Enabled:  true,
			MaxTries: 10,
			Radius:   2,
		},
		Data: DataConfig{
			SkillTable: "data/yaml/skills.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
