package chart

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Renderers by output format. The format name doubles as the subdirectory
// and file extension.
var Renderers = map[string]func(io.Writer, *Chart) error{
	"png":  WritePNG,
	"svg":  WriteSVG,
	"html": WriteHTML,
	"pdf":  WritePDF,
}

// DefaultFormats are written when none are configured.
var DefaultFormats = []string{"png", "html"}

// WriteFiles renders c once per format into <dir>/<format>/<base>.<format>
// and returns the paths written.
func WriteFiles(dir, base string, c *Chart, formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	var paths []string
	for _, f := range formats {
		render, ok := Renderers[f]
		if !ok {
			return paths, fmt.Errorf("unknown chart format %q", f)
		}
		var buf bytes.Buffer
		if err := render(&buf, c); err != nil {
			return paths, fmt.Errorf("render %s: %w", f, err)
		}
		sub := filepath.Join(dir, f)
		if err := os.MkdirAll(sub, 0755); err != nil {
			return paths, fmt.Errorf("create %s: %w", sub, err)
		}
		p := filepath.Join(sub, base+"."+f)
		if err := os.WriteFile(p, buf.Bytes(), 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

var fileSafe = strings.NewReplacer("%", "pct", "+", "plus", "/", "_", "\\", "_", " ", "_", ":", "_")

// FileBase names a leader chart file, e.g. "top_leaders_Scoring_G_stacked"
// or "top_goalies_leaders_SVpct_stacked" for goalies.
func FileBase(stat string, goalies bool) string {
	safe := fileSafe.Replace(stat)
	if goalies {
		return "top_goalies_leaders_" + safe + "_stacked"
	}
	return "top_leaders_" + safe + "_stacked"
}
