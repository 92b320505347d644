package routes

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/recipebox/internal/browse"
	"github.com/briangreenhill/recipebox/internal/config"
	appmw "github.com/briangreenhill/recipebox/internal/http/middleware"
	"github.com/briangreenhill/recipebox/web"
)

const panelOpenKey = "panel_open"

type Server struct {
	Router    *chi.Mux
	Sess      *scs.SessionManager
	Tmpl      *template.Template
	Browse    *browse.Controller
	Regions   *browse.Registry
	GridDelay time.Duration
	Log       zerolog.Logger
}

type ServerOptions struct {
	Sess   *scs.SessionManager
	Tmpl   *template.Template
	Browse *browse.Controller
	Cfg    config.Config
	Logger zerolog.Logger
}

type pageData struct {
	Title     string
	Query     string
	PanelOpen bool
	LoadGrid  bool
	GridDelay time.Duration
	Slots     map[string]template.HTML
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.HTMX)

	s := &Server{
		Router:    r,
		Sess:      opts.Sess,
		Tmpl:      opts.Tmpl,
		Browse:    opts.Browse,
		Regions:   opts.Browse.Regions(),
		GridDelay: opts.Cfg.GridDelay,
		Log:       opts.Logger,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Get("/", s.handleHome)
	r.Get("/regions/{name}", s.handleRegion)
	r.Post("/panel/open", s.handlePanelOpen)
	r.Post("/panel/close", s.handlePanelClose)

	return s
}

// Handler wraps the router with request logging and session loading.
func (s *Server) Handler() http.Handler {
	h := hlog.NewHandler(s.Log)(
		hlog.RemoteAddrHandler("ip")(
			hlog.RequestIDHandler("req_id", "X-Request-Id")(
				hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
					hlog.FromRequest(r).Info().
						Str("method", r.Method).
						Stringer("url", r.URL).
						Int("status", status).
						Int("size", size).
						Dur("duration", d).
						Msg("request")
				})(s.Router),
			),
		),
	)
	return s.Sess.LoadAndSave(h)
}

// render executes name into a buffer first so a template error never leaves a
// half written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.Tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render template failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("template", name).Msg("write response")
	}
}

// page renders the full layout with the fragment name placed into the slot
// selected by target.
func (s *Server) page(w http.ResponseWriter, r *http.Request, target, name string, data any) {
	var buf bytes.Buffer
	if err := s.Tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render template failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	slot := strings.TrimPrefix(target, "#")
	s.render(w, r, "page", s.pageData(r, map[string]template.HTML{
		slot: template.HTML(buf.String()), //nolint:gosec // output of html/template
	}))
}

func (s *Server) pageData(r *http.Request, slots map[string]template.HTML) pageData {
	if slots == nil {
		slots = map[string]template.HTML{}
	}
	_, panelFilled := slots[strings.TrimPrefix(browse.PanelTarget, "#")]
	return pageData{
		Title:     "Recipe Box",
		Query:     r.URL.Query().Get("q"),
		PanelOpen: panelFilled || s.Sess.GetBool(r.Context(), panelOpenKey),
		LoadGrid:  slots["grid"] == "" && slots["grid-error"] == "",
		GridDelay: s.GridDelay,
		Slots:     slots,
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "page", s.pageData(r, nil))
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	region, ok := s.Regions.Get(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.serveRegion(w, r, region)
}

// serveRegion runs the region's flow. htmx requests get the bare fragment;
// anything else gets the whole page with the fragment in its slot. Failures
// go to the failure's target, retargeting the swap when it is not the region's.
func (s *Server) serveRegion(w http.ResponseWriter, r *http.Request, region browse.Region) {
	data, err := region.Load(r.Context(), r.URL.Query())
	if err == nil {
		if appmw.IsHTMX(r.Context()) {
			s.render(w, r, region.Template, data)
			return
		}
		s.page(w, r, region.Target, region.Template, data)
		return
	}

	logFailure(hlog.FromRequest(r), region.Name, err)
	f := region.Failure(err)
	target := f.Target
	if target == "" {
		target = region.Target
	}
	if !appmw.IsHTMX(r.Context()) {
		s.page(w, r, target, "failure", f)
		return
	}
	if target != region.Target {
		w.Header().Set("HX-Retarget", target)
		w.Header().Set("HX-Reswap", "innerHTML")
	}
	s.render(w, r, "failure", f)
}

func logFailure(l *zerolog.Logger, region string, err error) {
	ev := l.Error()
	if browse.Expected(err) {
		ev = l.Info()
	}
	ev.Err(err).Str("region", region).Msg("region failed")
}

func (s *Server) handlePanelOpen(w http.ResponseWriter, r *http.Request) {
	s.Sess.Put(r.Context(), panelOpenKey, true)
	region, _ := s.Regions.Get("panel")
	s.serveRegion(w, r, region)
}

func (s *Server) handlePanelClose(w http.ResponseWriter, r *http.Request) {
	s.Sess.Put(r.Context(), panelOpenKey, false)
	w.WriteHeader(http.StatusNoContent)
}
