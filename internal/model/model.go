package model

import "math"

// Kind identifies which roster table a dataset was built from.
type Kind int

const (
	KindUnknown Kind = 0
	KindSkaters Kind = 1
	KindGoalies Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindSkaters:
		return "skaters"
	case KindGoalies:
		return "goalies"
	default:
		return "?"
	}
}

// ParseKind maps "skaters"/"goalies" (and a few aliases) to a Kind.
func ParseKind(s string) Kind {
	switch s {
	case "skaters", "skater", "players", "player":
		return KindSkaters
	case "goalies", "goalie":
		return KindGoalies
	default:
		return KindUnknown
	}
}

// TotalSeason is the season label carried by synthesized career rows.
const TotalSeason = "Total"

// ---- Rows ----

// StatLine is one player's record for one season, or the synthesized
// career row when Season == TotalSeason.
type StatLine struct {
	Player  string
	Flag    string
	Pos     string
	Season  string
	Age     float64
	Seasons int // number of season rows summed into a Total; 1 for season rows

	Stats map[string]float64 // numeric columns keyed by flattened header
	Text  map[string]string  // remaining non-numeric columns
}

// IsTotal reports whether the row is a synthesized career row.
func (s StatLine) IsTotal() bool { return s.Season == TotalSeason }

// Stat returns the named stat, or 0 when the row does not carry it.
func (s StatLine) Stat(name string) float64 {
	v, ok := s.Stats[name]
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}

// Label is the chart label: player name followed by the flag, if any.
func (s StatLine) Label() string {
	if s.Flag == "" {
		return s.Player
	}
	return s.Player + " " + s.Flag
}

// Clone returns a deep copy so totals never alias season-row maps.
func (s StatLine) Clone() StatLine {
	out := s
	out.Stats = make(map[string]float64, len(s.Stats))
	for k, v := range s.Stats {
		out.Stats[k] = v
	}
	out.Text = make(map[string]string, len(s.Text))
	for k, v := range s.Text {
		out.Text[k] = v
	}
	return out
}

// ---- Datasets ----

// Dataset is every season row (and, after aggregation, every Total row)
// loaded for one team and one table kind.
type Dataset struct {
	Kind    Kind
	Team    string
	Seasons []string // season labels in load order
	Columns []string // numeric column names in first-seen order
	Rows    []StatLine
}

// HasColumn reports whether the numeric column exists in the dataset.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a numeric column name if it is not already present.
func (d *Dataset) AddColumn(name string) {
	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
}

// Players returns unique player names in first-seen order.
func (d *Dataset) Players() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.Rows {
		if !seen[r.Player] {
			seen[r.Player] = true
			out = append(out, r.Player)
		}
	}
	return out
}

// Totals returns the Total rows only.
func (d *Dataset) Totals() []StatLine {
	var out []StatLine
	for _, r := range d.Rows {
		if r.IsTotal() {
			out = append(out, r)
		}
	}
	return out
}

// Lookup returns the player's row for a season.
func (d *Dataset) Lookup(player, season string) (StatLine, bool) {
	for _, r := range d.Rows {
		if r.Player == player && r.Season == season {
			return r, true
		}
	}
	return StatLine{}, false
}

// StatName pairs a stat column with its display name.
type StatName struct {
	Key  string `yaml:"key" json:"key"`
	Name string `yaml:"name" json:"name"`
}

// ---- Derived metrics ----

// ShootingPct is goals / shots on goal * 100, 0 when no shots.
func ShootingPct(goals, shots float64) float64 {
	if shots == 0 {
		return 0
	}
	return goals / shots * 100
}

// FaceoffPct is wins / (wins + losses) * 100, 0 when no faceoffs.
func FaceoffPct(wins, losses float64) float64 {
	if wins+losses == 0 {
		return 0
	}
	return wins / (wins + losses) * 100
}

// SavePct is saves / shots against * 100; a goalie who allowed nothing
// is credited 100.
func SavePct(saves, shots, goalsAgainst float64) float64 {
	if goalsAgainst == 0 || shots == 0 {
		return 100
	}
	return saves / shots * 100
}

// PerGame divides a cumulative total by games played.
func PerGame(total, games float64) float64 {
	if games == 0 {
		return 0
	}
	return total / games
}

// GAA is goals against per 60 minutes.
func GAA(goalsAgainst, minutes float64) float64 {
	if minutes == 0 {
		return 0
	}
	return goalsAgainst * 60 / minutes
}
