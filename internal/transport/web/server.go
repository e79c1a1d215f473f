package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/sandevgo/factdeck/internal/core"
	"github.com/sandevgo/factdeck/internal/service/browser"
	"github.com/sandevgo/factdeck/internal/service/view"
	"github.com/sandevgo/factdeck/pkg/conv"
	"github.com/sandevgo/factdeck/pkg/log"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// aboutMarkdown is the footer blurb. Fact text is never rendered as Markdown.
const aboutMarkdown = `Facts come from [uselessfacts](https://uselessfacts.jsph.pl) unless ` + "`FACTS_PROVIDER_URL`" + ` points elsewhere.
History lasts only as long as this server runs: use **Previous** and **Next** to page through it, or pick any entry in the list.`

// pageData feeds templates/page.html.
type pageData struct {
	Title      string
	Heading    string
	Refresh    int
	Page       view.Page
	About      template.HTML
	SourceLink bool
	Loading    bool
	Failed     bool
	HasFact    bool
	NewFact    bool
}

// stateResponse is the body of GET /api/state.
type stateResponse struct {
	Cursor  int       `json:"cursor"`
	Length  int       `json:"length"`
	Loading bool      `json:"loading"`
	Error   string    `json:"error,omitempty"`
	Page    view.Page `json:"page"`
}

// Server serves a single browsing session over HTTP.
type Server struct {
	browser *browser.Browser
	cfg     core.WebConfig
	srv     *http.Server
	about   template.HTML
}

func NewServer(ctx context.Context, cfg core.WebConfig, b *browser.Browser) *Server {
	s := &Server{
		browser: b,
		cfg:     cfg,
		about:   template.HTML(conv.MarkdownToHTML([]byte(aboutMarkdown))),
	}
	s.srv = &http.Server{
		Addr:              cfg.GetListenAddr(),
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	return s
}

// Handler returns the routed, logged handler tree.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" /{$}", s.handleIndex)
	mux.HandleFunc(http.MethodPost+" /previous", s.handlePrevious)
	mux.HandleFunc(http.MethodPost+" /next", s.handleNext)
	mux.HandleFunc(http.MethodPost+" /facts/{index}", s.handleGoTo)
	mux.HandleFunc(http.MethodGet+" /api/state", s.handleState)
	mux.HandleFunc(http.MethodGet+" /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var h http.Handler = mux
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.NewHandler(*log.FromCtx(ctx))(h)
	return h
}

// Start mounts the session and serves until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.browser.Mount()

	logger.Info().Str("addr", "http://"+ln.Addr().String()).Msg("serving facts")
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests. The browser is closed by its owner.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.browser.Mount()
	state := s.browser.Snapshot()
	page := view.Project(state)

	data := pageData{
		Title:   view.Title,
		Heading: view.PanelHeading,
		Page:    page,
		About:   s.about,
		Loading: page.Mode == view.ModeLoading,
		Failed:  page.Mode == view.ModeError,
		HasFact: page.Mode == view.ModeFact,
		NewFact: page.Next.Label == view.NewFactLabel,
	}
	if data.Loading {
		data.Refresh = int(s.cfg.GetRefreshInterval() / time.Second)
	}
	if data.HasFact {
		data.SourceLink = isHTTPURL(page.Source)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render page")
	}
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.browser.Previous()
	redirectHome(w, r)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.browser.NextAsync()
	redirectHome(w, r)
}

func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid fact index", http.StatusBadRequest)
		return
	}
	if _, ok := s.browser.GoTo(index); !ok {
		http.Error(w, "fact index out of range", http.StatusBadRequest)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := s.browser.Snapshot()
	resp := stateResponse{
		Cursor:  state.Cursor(),
		Length:  state.Len(),
		Loading: state.Loading(),
		Error:   state.ErrorMessage(),
		Page:    view.Project(state),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode state")
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
