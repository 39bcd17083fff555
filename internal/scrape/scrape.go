// Package scrape downloads a stats page and saves its tables.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/pable/go-hockey-leaders/internal/extract"
	"github.com/pable/go-hockey-leaders/internal/fetch"
)

// Getter is satisfied by *fetch.Client.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Downloader fetches pages and hands them to the extractor.
type Downloader struct {
	Client    Getter
	Extractor *extract.Extractor
	OutDir    string
}

// New returns a Downloader writing under outDir.
func New(client *fetch.Client, tables []string, outDir string) *Downloader {
	return &Downloader{
		Client:    client,
		Extractor: &extract.Extractor{Tables: tables},
		OutDir:    outDir,
	}
}

// Result summarizes one page.
type Result struct {
	URL    string
	Saved  int
	Target *extract.Frame
}

// DownloadTables fetches pageURL and saves every table of interest. A fetch
// or parse failure is logged and yields a nil result.
func (d *Downloader) DownloadTables(ctx context.Context, pageURL, targetID string) *Result {
	log.Info().Str("url", pageURL).Msg("starting download")

	body, err := d.Client.Get(ctx, pageURL)
	if err != nil {
		log.Error().Err(err).Str("url", pageURL).Msg("error fetching URL")
		return nil
	}
	res, err := d.ExtractHTML(body, pageURL, targetID)
	if err != nil {
		log.Error().Err(err).Str("url", pageURL).Msg("error processing page")
		return nil
	}
	if res.Saved > 0 {
		log.Info().Int("files", res.Saved).Str("dir", d.OutDir).Msg("download complete")
	} else {
		log.Warn().Str("url", pageURL).Msg("no files were saved")
	}
	return res
}

// ExtractHTML runs the extractor over an already-fetched page.
func (d *Downloader) ExtractHTML(body []byte, pageURL, targetID string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if err := os.MkdirAll(d.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	target, saved := d.Extractor.FindAndParseTables(doc, pageURL, d.OutDir, targetID)
	return &Result{URL: pageURL, Saved: saved, Target: target}, nil
}

// TeamSeasonURL builds the team season page URL, e.g.
// https://www.hockey-reference.com/teams/SEA/2024.html.
func TeamSeasonURL(baseURL, team string, season int) string {
	return fmt.Sprintf("%s/teams/%s/%d.html", baseURL, team, season)
}
