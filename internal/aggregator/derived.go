package aggregator

import (
	"strings"

	"github.com/pable/go-hockey-leaders/internal/model"
)

// Derived column names.
const (
	ColPPP   = "PPP"
	ColATOI  = "ATOI"
	ColShPct = "S%"
	ColFOPct = "FO%"
	ColSVPct = "SV%"
	ColGAA   = "GAA"
)

// Source column candidates, flattened names first. Older exports carry the
// bare names.
var (
	srcGP      = []string{"GP"}
	srcGoals   = []string{"Scoring_G", "G"}
	srcShots   = []string{"Shots_SOG", "SOG", "S"}
	srcTOI     = []string{"Ice Time_TOI", "TOI"}
	srcPPG     = []string{"Goals_PPG", "PPG", "Goals_PP"}
	srcPPA     = []string{"Assists_PP", "PPA"}
	srcFOW     = []string{"Faceoffs_FOW", "FOW"}
	srcFOL     = []string{"Faceoffs_FOL", "FOL"}
	srcSaves   = []string{"Goalie Stats_SV", "SV"}
	srcShotsA  = []string{"Goalie Stats_Shots", "Shots", "SA"}
	srcGA      = []string{"Goalie Stats_GA", "GA"}
	srcMinutes = []string{"Goalie Stats_MIN", "MIN"}
)

// IsRate reports whether a column is a ratio that must be recomputed rather
// than summed.
func IsRate(col string) bool {
	if strings.Contains(col, "%") {
		return true
	}
	base := col
	if i := strings.LastIndex(col, "_"); i >= 0 {
		base = col[i+1:]
	}
	return base == ColATOI || base == ColGAA
}

func pick(r *model.StatLine, names []string) (float64, bool) {
	for _, n := range names {
		if v, ok := r.Stats[n]; ok {
			return v, true
		}
	}
	return 0, false
}

// deriveSeason fills derived columns a season row does not already carry.
func deriveSeason(kind model.Kind, r *model.StatLine) []string {
	var added []string
	set := func(name string, v float64) {
		if _, ok := r.Stats[name]; ok {
			return
		}
		r.Stats[name] = v
		added = append(added, name)
	}
	if kind == model.KindSkaters {
		ppg, okG := pick(r, srcPPG)
		ppa, okA := pick(r, srcPPA)
		if okG && okA {
			set(ColPPP, ppg+ppa)
		}
	}
	for _, d := range rates(kind, r) {
		set(d.name, d.value)
	}
	return added
}

// deriveTotal recomputes every rate column on a summed career row.
func deriveTotal(kind model.Kind, r *model.StatLine) []string {
	var added []string
	for _, d := range rates(kind, r) {
		r.Stats[d.name] = d.value
		added = append(added, d.name)
	}
	return added
}

type derived struct {
	name  string
	value float64
}

// rates computes the ratio columns available from the row's components, in
// a fixed order.
func rates(kind model.Kind, r *model.StatLine) []derived {
	var out []derived
	switch kind {
	case model.KindSkaters:
		gp, okGP := pick(r, srcGP)
		if toi, ok := pick(r, srcTOI); ok && okGP {
			out = append(out, derived{ColATOI, model.PerGame(toi, gp)})
		}
		g, okG := pick(r, srcGoals)
		if sog, ok := pick(r, srcShots); ok && okG {
			out = append(out, derived{ColShPct, model.ShootingPct(g, sog)})
		}
		fow, okW := pick(r, srcFOW)
		if fol, ok := pick(r, srcFOL); ok && okW {
			out = append(out, derived{ColFOPct, model.FaceoffPct(fow, fol)})
		}
	case model.KindGoalies:
		ga, okGA := pick(r, srcGA)
		sv, okSV := pick(r, srcSaves)
		if sa, ok := pick(r, srcShotsA); ok && okSV && okGA {
			out = append(out, derived{ColSVPct, model.SavePct(sv, sa, ga)})
		}
		if mins, ok := pick(r, srcMinutes); ok && okGA {
			out = append(out, derived{ColGAA, model.GAA(ga, mins)})
		}
	}
	return out
}
