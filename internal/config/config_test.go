package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pable/go-hockey-leaders/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "hockeyleaders.yaml")
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Team.Short != "SEA" || c.TeamName() != "Seattle Kraken" {
		t.Errorf("team = %+v", c.Team)
	}
	if got := c.Seasons(); len(got) != 5 || got[0] != 2022 || got[4] != 2026 {
		t.Errorf("seasons = %v", got)
	}
	if c.Leaders != 15 {
		t.Errorf("leaders = %d", c.Leaders)
	}
	if len(c.StatNames(model.KindSkaters)) != 17 || len(c.StatNames(model.KindGoalies)) != 10 {
		t.Errorf("catalog sizes = %d, %d", len(c.Stats.Skaters), len(c.Stats.Goalies))
	}
	if c.TableID(model.KindGoalies) != "goalie_stats" {
		t.Errorf("goalie table = %q", c.TableID(model.KindGoalies))
	}
	if c.Fetch.Delay != 3*time.Second || c.Fetch.MaxAttempts != 1 {
		t.Errorf("fetch = %+v", c.Fetch)
	}
}

func TestDefaultCatalogNotShared(t *testing.T) {
	c := Default()
	c.Stats.Skaters[0].Name = "changed"
	if SkaterStats[0].Name != "Games Played" {
		t.Error("Default should copy the stat catalog")
	}
}

func TestLoadOverrides(t *testing.T) {
	p := writeConfig(t, `
team:
  name: Vegas Golden Knights
  short: VEG
firstSeason: 2018
lastSeason: 2020
leaders: 10
fetch:
  delay: 5s
stats:
  goalies:
    - key: W
      name: Wins
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Team.Short != "VEG" || c.Leaders != 10 {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.Fetch.Delay != 5*time.Second {
		t.Errorf("delay = %v", c.Fetch.Delay)
	}
	if c.Fetch.Timeout != 15*time.Second {
		t.Errorf("unset fields should keep defaults, timeout = %v", c.Fetch.Timeout)
	}
	if len(c.Stats.Goalies) != 1 || len(c.Stats.Skaters) != 17 {
		t.Errorf("catalogs = %d goalies, %d skaters", len(c.Stats.Goalies), len(c.Stats.Skaters))
	}
	if got := c.Seasons(); len(got) != 3 {
		t.Errorf("seasons = %v", got)
	}
}

func TestLoadInvalid(t *testing.T) {
	p := writeConfig(t, "firstSeason: 2025\nlastSeason: 2020\n")
	if _, err := Load(p); err == nil {
		t.Error("expected error for reversed season range")
	}
	p = writeConfig(t, "team: [not, a, map]\n")
	if _, err := Load(p); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStatName(t *testing.T) {
	c := Default()
	if got := c.StatName(model.KindSkaters, "PM"); got != "Plus/Minus" {
		t.Errorf("StatName(PM) = %q", got)
	}
	if got := c.StatName(model.KindGoalies, "SV%"); got != "SV%" {
		t.Errorf("unknown stat should fall back to its key, got %q", got)
	}
}
