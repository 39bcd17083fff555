// Package flags loads the player citizenship lookup (flags.csv).
package flags

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// Entry is one row of flags.csv.
type Entry struct {
	Player string `csv:"Player"`
	Flag   string `csv:"Flag"`
}

// Table maps player names to flags. The zero value is an empty table.
type Table struct {
	byPlayer map[string]string
}

// New builds a table from entries; the first entry for a player wins.
func New(entries []Entry) *Table {
	t := &Table{byPlayer: make(map[string]string, len(entries))}
	for _, e := range entries {
		name := strings.TrimSpace(e.Player)
		if _, ok := t.byPlayer[name]; ok || name == "" {
			continue
		}
		t.byPlayer[name] = strings.TrimSpace(e.Flag)
	}
	return t
}

// Load reads a flags CSV, tolerating a UTF-8 byte order mark.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flags: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var entries []Entry
	if err := gocsv.UnmarshalBytes(data, &entries); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return New(entries), nil
}

// Lookup returns the player's flag.
func (t *Table) Lookup(player string) (string, bool) {
	if t == nil || t.byPlayer == nil {
		return "", false
	}
	f, ok := t.byPlayer[player]
	return f, ok
}

// Len is the number of players in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byPlayer)
}
