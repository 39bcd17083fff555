package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pable/go-hockey-leaders/internal/model"
)

// DatasetInfo summarizes a stored dataset.
type DatasetInfo struct {
	Kind      model.Kind
	Team      string
	Seasons   []string
	Players   int
	Rows      int
	UpdatedAt string
}

// SaveDataset replaces the stored dataset for (kind, team) in one transaction.
func (db *DB) SaveDataset(ds *model.Dataset) error {
	kind := ds.Kind.String()
	seasons, err := json.Marshal(nonNil(ds.Seasons))
	if err != nil {
		return err
	}
	columns, err := json.Marshal(nonNil(ds.Columns))
	if err != nil {
		return err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"stat_text", "stat_values", "stat_lines", "datasets"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE kind = ? AND team = ?", kind, ds.Team); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO datasets(kind, team, seasons, columns, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		kind, ds.Team, string(seasons), string(columns), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	lineStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO stat_lines(kind, team, season, player, flag, pos, age, seasons, row_order)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer lineStmt.Close()
	valueStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO stat_values(kind, team, season, player, stat, value)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer valueStmt.Close()
	textStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO stat_text(kind, team, season, player, col, value)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer textStmt.Close()

	for i, r := range ds.Rows {
		if _, err := lineStmt.Exec(kind, ds.Team, r.Season, r.Player, r.Flag, r.Pos, r.Age, r.Seasons, i); err != nil {
			return fmt.Errorf("insert stat_lines for %s %s: %w", r.Player, r.Season, err)
		}
		for stat, v := range r.Stats {
			if _, err := valueStmt.Exec(kind, ds.Team, r.Season, r.Player, stat, v); err != nil {
				return fmt.Errorf("insert stat_values %s for %s: %w", stat, r.Player, err)
			}
		}
		for col, v := range r.Text {
			if _, err := textStmt.Exec(kind, ds.Team, r.Season, r.Player, col, v); err != nil {
				return fmt.Errorf("insert stat_text %s for %s: %w", col, r.Player, err)
			}
		}
	}
	return tx.Commit()
}

// LoadDataset reads a stored dataset. Returns nil if none is stored for
// (kind, team).
func (db *DB) LoadDataset(kind model.Kind, team string) (*model.Dataset, error) {
	var seasons, columns string
	err := db.conn.QueryRow(
		"SELECT seasons, columns FROM datasets WHERE kind = ? AND team = ?",
		kind.String(), team,
	).Scan(&seasons, &columns)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{Kind: kind, Team: team}
	if err := json.Unmarshal([]byte(seasons), &ds.Seasons); err != nil {
		return nil, fmt.Errorf("decode seasons: %w", err)
	}
	if err := json.Unmarshal([]byte(columns), &ds.Columns); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT season, player, flag, pos, age, seasons
		FROM stat_lines WHERE kind = ? AND team = ?
		ORDER BY row_order`, kind.String(), team)
	if err != nil {
		return nil, err
	}
	type key struct{ season, player string }
	index := make(map[key]int)
	for rows.Next() {
		var r model.StatLine
		if err := rows.Scan(&r.Season, &r.Player, &r.Flag, &r.Pos, &r.Age, &r.Seasons); err != nil {
			rows.Close()
			return nil, err
		}
		r.Stats = make(map[string]float64)
		r.Text = make(map[string]string)
		index[key{r.Season, r.Player}] = len(ds.Rows)
		ds.Rows = append(ds.Rows, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vals, err := db.conn.Query(
		"SELECT season, player, stat, value FROM stat_values WHERE kind = ? AND team = ?",
		kind.String(), team)
	if err != nil {
		return nil, err
	}
	for vals.Next() {
		var season, player, stat string
		var v float64
		if err := vals.Scan(&season, &player, &stat, &v); err != nil {
			vals.Close()
			return nil, err
		}
		if i, ok := index[key{season, player}]; ok {
			ds.Rows[i].Stats[stat] = v
		}
	}
	vals.Close()
	if err := vals.Err(); err != nil {
		return nil, err
	}

	texts, err := db.conn.Query(
		"SELECT season, player, col, value FROM stat_text WHERE kind = ? AND team = ?",
		kind.String(), team)
	if err != nil {
		return nil, err
	}
	defer texts.Close()
	for texts.Next() {
		var season, player, col, v string
		if err := texts.Scan(&season, &player, &col, &v); err != nil {
			return nil, err
		}
		if i, ok := index[key{season, player}]; ok {
			ds.Rows[i].Text[col] = v
		}
	}
	return ds, texts.Err()
}

// ListDatasets returns every stored dataset ordered by team then kind.
func (db *DB) ListDatasets() ([]DatasetInfo, error) {
	rows, err := db.conn.Query(`
		SELECT d.kind, d.team, d.seasons, d.updated_at,
		       (SELECT COUNT(DISTINCT player) FROM stat_lines l WHERE l.kind = d.kind AND l.team = d.team),
		       (SELECT COUNT(1) FROM stat_lines l WHERE l.kind = d.kind AND l.team = d.team)
		FROM datasets d
		ORDER BY d.team, d.kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		var kind, seasons string
		if err := rows.Scan(&kind, &info.Team, &seasons, &info.UpdatedAt, &info.Players, &info.Rows); err != nil {
			return nil, err
		}
		info.Kind = model.ParseKind(kind)
		if err := json.Unmarshal([]byte(seasons), &info.Seasons); err != nil {
			return nil, fmt.Errorf("decode seasons for %s %s: %w", kind, info.Team, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and rows
// rendered as strings. NULL is rendered as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatCell(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
