// Package server serves leader data and charts from the store over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/pable/go-hockey-leaders/internal/chart"
	"github.com/pable/go-hockey-leaders/internal/config"
	"github.com/pable/go-hockey-leaders/internal/leaders"
	"github.com/pable/go-hockey-leaders/internal/model"
)

// Store is satisfied by *storage.DB.
type Store interface {
	LoadDataset(kind model.Kind, team string) (*model.Dataset, error)
}

// Server routes requests for one team.
type Server struct {
	store  Store
	cfg    *config.Config
	router *mux.Router
}

var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"html": "text/html; charset=utf-8",
	"pdf":  "application/pdf",
}

// New builds the router.
func New(store Store, cfg *config.Config) *Server {
	s := &Server{store: store, cfg: cfg, router: mux.NewRouter()}
	s.router.HandleFunc("/", s.index).Methods("GET")
	s.router.HandleFunc("/api/{kind}/leaders/{stat}", s.leaders).Methods("GET")
	s.router.HandleFunc("/charts/{kind}/{stat}.{format:svg|png|html|pdf}", s.chart).Methods("GET")
	s.router.Use(logRequests)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Dur("took", time.Since(start)).Msg("request")
	})
}

// dataset resolves the {kind} path variable and loads the team's dataset,
// writing the error response itself when it cannot.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*model.Dataset, bool) {
	kind := model.ParseKind(mux.Vars(r)["kind"])
	if kind == model.KindUnknown {
		http.Error(w, "kind must be skaters or goalies", http.StatusNotFound)
		return nil, false
	}
	ds, err := s.store.LoadDataset(kind, s.cfg.Team.Short)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("load dataset")
		http.Error(w, "failed to load dataset", http.StatusInternalServerError)
		return nil, false
	}
	if ds == nil {
		http.Error(w, "no "+kind.String()+" data stored; run aggregate first", http.StatusNotFound)
		return nil, false
	}
	return ds, true
}

type leadersResponse struct {
	Team    string           `json:"team"`
	Kind    string           `json:"kind"`
	Stat    string           `json:"stat"`
	Name    string           `json:"name"`
	Seasons []string         `json:"seasons"`
	Record  float64          `json:"record"`
	Leaders []leaders.Leader `json:"leaders"`
}

func (s *Server) leaders(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	stat := mux.Vars(r)["stat"]
	if !ds.HasColumn(stat) {
		http.Error(w, "unknown stat "+stat, http.StatusNotFound)
		return
	}
	n := s.cfg.Leaders
	if q := r.URL.Query().Get("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = v
	}
	record, _ := leaders.SingleSeasonRecord(ds, stat)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leadersResponse{
		Team:    s.cfg.TeamName(),
		Kind:    ds.Kind.String(),
		Stat:    stat,
		Name:    s.cfg.StatName(ds.Kind, stat),
		Seasons: ds.Seasons,
		Record:  record,
		Leaders: leaders.Top(ds, stat, n),
	})
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	stat, format := vars["stat"], vars["format"]
	if !ds.HasColumn(stat) {
		http.Error(w, "unknown stat "+stat, http.StatusNotFound)
		return
	}

	c := leaders.Build(ds, stat, s.cfg.StatName(ds.Kind, stat), s.cfg.TeamName(), s.cfg.Leaders)
	var buf bytes.Buffer
	if err := chart.Renderers[format](&buf, c); err != nil {
		log.Error().Err(err).Str("stat", stat).Str("format", format).Msg("render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(buf.Bytes())
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Team}} All-Time Leaders</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 24px; color: #222; }
li { margin: 4px 0; }
a { color: #2563eb; text-decoration: none; }
</style>
</head>
<body>
<h1>{{.Team}} All-Time Leaders</h1>
{{range .Sections}}<h2>{{.Title}}</h2>
<ul>
{{range .Stats}}<li>{{.Name}}: <a href="/charts/{{.Kind}}/{{.Key}}.html">chart</a> | <a href="/charts/{{.Kind}}/{{.Key}}.svg">svg</a> | <a href="/api/{{.Kind}}/leaders/{{.Key}}">json</a></li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type indexStat struct {
	model.StatName
	Kind model.Kind
}

type indexSection struct {
	Title string
	Stats []indexStat
}

type indexPage struct {
	Team     string
	Sections []indexSection
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Team: s.cfg.TeamName()}
	for _, sec := range []struct {
		title string
		kind  model.Kind
	}{{"Skaters", model.KindSkaters}, {"Goalies", model.KindGoalies}} {
		is := indexSection{Title: sec.title}
		for _, st := range s.cfg.StatNames(sec.kind) {
			is.Stats = append(is.Stats, indexStat{StatName: st, Kind: sec.kind})
		}
		page.Sections = append(page.Sections, is)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, page); err != nil {
		log.Error().Err(err).Msg("render index")
	}
}
