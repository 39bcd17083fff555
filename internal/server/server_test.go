package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pable/go-hockey-leaders/internal/config"
	"github.com/pable/go-hockey-leaders/internal/model"
)

type memStore map[model.Kind]*model.Dataset

func (m memStore) LoadDataset(kind model.Kind, team string) (*model.Dataset, error) {
	ds := m[kind]
	if ds == nil || ds.Team != team {
		return nil, nil
	}
	return ds, nil
}

type failStore struct{}

func (failStore) LoadDataset(model.Kind, string) (*model.Dataset, error) {
	return nil, errors.New("disk on fire")
}

func skaters() *model.Dataset {
	row := func(player, season string, g, pm float64) model.StatLine {
		return model.StatLine{Player: player, Season: season, Seasons: 1,
			Stats: map[string]float64{"Scoring_G": g, "PM": pm}}
	}
	return &model.Dataset{
		Kind:    model.KindSkaters,
		Team:    "SEA",
		Seasons: []string{"2022", "2023"},
		Columns: []string{"Scoring_G", "PM"},
		Rows: []model.StatLine{
			row("Jared McCann", "2022", 27, -12),
			row("Jared McCann", "2023", 40, 10),
			row("Vince Dunn", "2023", 14, 12),
			{Player: "Jared McCann", Season: model.TotalSeason, Seasons: 2, Stats: map[string]float64{"Scoring_G": 67, "PM": -2}},
			{Player: "Vince Dunn", Season: model.TotalSeason, Seasons: 1, Stats: map[string]float64{"Scoring_G": 14, "PM": 12}},
		},
	}
}

func newTestServer(store Store) *httptest.Server {
	return httptest.NewServer(New(store, config.Default()))
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", url, err)
	}
	return resp, string(body)
}

func TestIndex(t *testing.T) {
	ts := newTestServer(memStore{})
	defer ts.Close()

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Seattle Kraken All-Time Leaders", "/charts/skaters/Scoring_G.html", "/api/goalies/leaders/SV"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestLeadersJSON(t *testing.T) {
	ts := newTestServer(memStore{model.KindSkaters: skaters()})
	defer ts.Close()

	resp, body := get(t, ts.URL+"/api/skaters/leaders/Scoring_G?n=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var got leadersResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Goals Scored" || got.Record != 40 || got.Team != "Seattle Kraken" {
		t.Errorf("response = %+v", got)
	}
	if len(got.Leaders) != 1 || got.Leaders[0].Player != "Jared McCann" || got.Leaders[0].Value != 67 {
		t.Errorf("leaders = %+v", got.Leaders)
	}
}

func TestLeadersErrors(t *testing.T) {
	ts := newTestServer(memStore{model.KindSkaters: skaters()})
	defer ts.Close()

	cases := []struct {
		path string
		code int
	}{
		{"/api/referees/leaders/GP", http.StatusNotFound},
		{"/api/goalies/leaders/W", http.StatusNotFound},
		{"/api/skaters/leaders/NOPE", http.StatusNotFound},
		{"/api/skaters/leaders/Scoring_G?n=zero", http.StatusBadRequest},
	}
	for _, c := range cases {
		resp, _ := get(t, ts.URL+c.path)
		if resp.StatusCode != c.code {
			t.Errorf("%s: status = %d, want %d", c.path, resp.StatusCode, c.code)
		}
	}
}

func TestChartSVG(t *testing.T) {
	ts := newTestServer(memStore{model.KindSkaters: skaters()})
	defer ts.Close()

	resp, body := get(t, ts.URL+"/charts/skaters/PM.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(body, "Seattle Kraken All-Time Leaders in Plus/Minus") {
		t.Error("svg missing title")
	}

	resp, _ = get(t, ts.URL+"/charts/skaters/PM.gif")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown format: status = %d", resp.StatusCode)
	}
}

func TestStoreFailure(t *testing.T) {
	ts := newTestServer(failStore{})
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/api/skaters/leaders/GP")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
