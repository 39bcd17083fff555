package storage

import (
	"github.com/pable/go-hockey-leaders/internal/model"
)

// Record is a single-season best for one stat. Ties yield one Record per
// holder.
type Record struct {
	Stat   string
	Player string
	Season string
	Value  float64
}

// SeasonRecords returns the single-season record holders of every stat in
// the stored dataset, ordered by stat then season.
func (db *DB) SeasonRecords(kind model.Kind, team string) ([]Record, error) {
	k := kind.String()
	rows, err := db.conn.Query(`
		SELECT v.stat, v.player, v.season, v.value
		FROM stat_values v
		JOIN (
			SELECT stat, MAX(value) AS best
			FROM stat_values
			WHERE kind = ? AND team = ? AND season <> ?
			GROUP BY stat
		) m ON m.stat = v.stat AND v.value = m.best
		WHERE v.kind = ? AND v.team = ? AND v.season <> ?
		ORDER BY v.stat, v.season, v.player`,
		k, team, model.TotalSeason, k, team, model.TotalSeason)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Stat, &r.Player, &r.Season, &r.Value); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayerLines returns every stored row for a player, season rows first in
// load order and the Total last.
func (db *DB) PlayerLines(kind model.Kind, team, player string) ([]model.StatLine, error) {
	ds, err := db.LoadDataset(kind, team)
	if err != nil || ds == nil {
		return nil, err
	}
	var out []model.StatLine
	for _, r := range ds.Rows {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out, nil
}
