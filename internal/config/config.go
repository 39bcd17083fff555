// Package config loads the YAML configuration file over built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/pable/go-hockey-leaders/internal/model"
)

// Config is the full tool configuration. Every field has a default; a YAML
// file only needs to name what it changes.
type Config struct {
	Team struct {
		Name  string `yaml:"name"`
		Short string `yaml:"short"`
	} `yaml:"team"`

	FirstSeason int `yaml:"firstSeason"`
	LastSeason  int `yaml:"lastSeason"`

	BaseURL   string `yaml:"baseURL"`
	DataDir   string `yaml:"dataDir"`
	OutputDir string `yaml:"outputDir"`
	FlagsFile string `yaml:"flagsFile"`

	Leaders int      `yaml:"leaders"`
	Formats []string `yaml:"formats"`

	Tables struct {
		Skaters string `yaml:"skaters"`
		Goalies string `yaml:"goalies"`
	} `yaml:"tables"`

	Fetch struct {
		UserAgent   string        `yaml:"userAgent"`
		Timeout     time.Duration `yaml:"timeout"`
		Delay       time.Duration `yaml:"delay"`
		MaxAttempts int           `yaml:"maxAttempts"`
		CacheDir    string        `yaml:"cacheDir"`
	} `yaml:"fetch"`

	Load struct {
		Drop        []string `yaml:"drop"`
		TimeColumns []string `yaml:"timeColumns"`
	} `yaml:"load"`

	Stats struct {
		Skaters []model.StatName `yaml:"skaters"`
		Goalies []model.StatName `yaml:"goalies"`
	} `yaml:"stats"`

	Serve struct {
		Addr string `yaml:"addr"`
	} `yaml:"serve"`
}

// SkaterStats are the charted skater columns with their display names.
var SkaterStats = []model.StatName{
	{Key: "GP", Name: "Games Played"},
	{Key: "Scoring_G", Name: "Goals Scored"},
	{Key: "Scoring_A", Name: "Assists"},
	{Key: "Scoring_PTS", Name: "Points Scored"},
	{Key: "PIM", Name: "Penalty Minutes"},
	{Key: "Goals_EVG", Name: "Even-Strength Goals"},
	{Key: "Goals_PPG", Name: "Powerplay Goals"},
	{Key: "Goals_SHG", Name: "Short-handed Goals"},
	{Key: "Goals_GWG", Name: "Game-Winning Goals"},
	{Key: "Assists_EV", Name: "Even-Strength Assists"},
	{Key: "Assists_PP", Name: "Powerplay Assists"},
	{Key: "PPP", Name: "Powerplay Points"},
	{Key: "Assists_SH", Name: "Short-handed Assists"},
	{Key: "Shots_SOG", Name: "Shots On Goal"},
	{Key: "BLK", Name: "Blocked Shots"},
	{Key: "HIT", Name: "Hits"},
	{Key: "PM", Name: "Plus/Minus"},
}

// GoalieStats are the charted goalie columns with their display names.
var GoalieStats = []model.StatName{
	{Key: "GP", Name: "Games Played"},
	{Key: "GS", Name: "Games Started"},
	{Key: "W", Name: "Wins"},
	{Key: "L", Name: "Losses"},
	{Key: "GA", Name: "Goals Against"},
	{Key: "Shots", Name: "Shots Against"},
	{Key: "SV", Name: "Saves"},
	{Key: "SO", Name: "Shutouts"},
	{Key: "QS", Name: "Quality Starts"},
	{Key: "GPS", Name: "Goalie Point Shares"},
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{
		FirstSeason: 2022,
		LastSeason:  2026,
		BaseURL:     "https://www.hockey-reference.com",
		DataDir:     "hockey_reference_csvs",
		OutputDir:   "output",
		FlagsFile:   "flags.csv",
		Leaders:     15,
		Formats:     []string{"png", "html"},
	}
	c.Team.Name = "Seattle Kraken"
	c.Team.Short = "SEA"
	c.Tables.Skaters = "player_stats"
	c.Tables.Goalies = "goalie_stats"
	c.Fetch.Timeout = 15 * time.Second
	c.Fetch.Delay = 3 * time.Second
	c.Fetch.MaxAttempts = 1
	c.Load.Drop = []string{"Rk", "ATOI"}
	c.Load.TimeColumns = []string{"Ice Time_TOI"}
	c.Stats.Skaters = append([]model.StatName(nil), SkaterStats...)
	c.Stats.Goalies = append([]model.StatName(nil), GoalieStats...)
	c.Serve.Addr = "127.0.0.1:8080"
	return c
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the fields the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Team.Short == "" {
		return fmt.Errorf("team.short is required")
	}
	if c.FirstSeason > c.LastSeason {
		return fmt.Errorf("firstSeason %d is after lastSeason %d", c.FirstSeason, c.LastSeason)
	}
	if c.Leaders < 1 {
		return fmt.Errorf("leaders must be positive, got %d", c.Leaders)
	}
	return nil
}

// Seasons lists the season years to download, first to last inclusive.
func (c *Config) Seasons() []int {
	var out []int
	for s := c.FirstSeason; s <= c.LastSeason; s++ {
		out = append(out, s)
	}
	return out
}

// TeamName is the display name, falling back to the short code.
func (c *Config) TeamName() string {
	if c.Team.Name != "" {
		return c.Team.Name
	}
	return c.Team.Short
}

// TableID is the extracted table that holds rows of the given kind.
func (c *Config) TableID(kind model.Kind) string {
	if kind == model.KindGoalies {
		return c.Tables.Goalies
	}
	return c.Tables.Skaters
}

// StatNames is the stat catalog for the given kind.
func (c *Config) StatNames(kind model.Kind) []model.StatName {
	if kind == model.KindGoalies {
		return c.Stats.Goalies
	}
	return c.Stats.Skaters
}

// StatName returns the display name of a stat, or the key itself when the
// catalog does not list it.
func (c *Config) StatName(kind model.Kind, key string) string {
	for _, s := range c.StatNames(kind) {
		if s.Key == key {
			return s.Name
		}
	}
	return key
}
