package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goscatter/internal/scatter"
)

var contentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
	"pdf": "application/pdf",
}

// Selection is the body of GET /selection.
type Selection struct {
	Indices []int    `json:"indices"`
	Details []string `json:"details"`
}

type handler struct {
	cfg  scatter.Config
	html HTMLOptions
	log  *slog.Logger
}

// NewHandler serves the chart described by cfg. Every request renders its
// own chart, so concurrent requests never share interaction state.
//
// Routes: GET / (html), GET /plot.{svg,png,pdf}, GET /selection,
// GET /healthz. The page and plot routes accept hide=A,B to dim categories
// and brush=x0,y0,x1,y1 to select.
func NewHandler(cfg scatter.Config, o HTMLOptions, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{cfg: cfg, html: o, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", h.page)
	r.Get("/plot.{format}", h.plot)
	r.Get("/selection", h.selection)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	c, ok := h.chart(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, c, h.html); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *handler) plot(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	ct, known := contentTypes[format]
	if !known {
		h.fail(w, http.StatusNotFound, fmt.Errorf("%w: %q", ErrFormat, format))
		return
	}
	c, ok := h.chart(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePlot(&buf, c, format, DefaultPlotSize); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	_, _ = buf.WriteTo(w)
}

func (h *handler) selection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var vals [4]float64
	for i, k := range []string{"x0", "y0", "x1", "y1"} {
		v, err := strconv.ParseFloat(q.Get(k), 64)
		if err != nil {
			h.fail(w, http.StatusBadRequest, fmt.Errorf("query %s: %w", k, err))
			return
		}
		vals[i] = v
	}
	c, ok := h.chart(w, r)
	if !ok {
		return
	}
	c.OnDragStart()
	c.OnDragEnd(&scatter.Rect{X0: vals[0], Y0: vals[1], X1: vals[2], Y1: vals[3]})

	sel := Selection{Indices: c.SelectedIndices(), Details: c.Details()}
	if sel.Indices == nil {
		sel.Indices = []int{}
	}
	if sel.Details == nil {
		sel.Details = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sel); err != nil {
		h.log.Warn("encode selection", "error", err)
	}
}

// chart renders a fresh chart and applies the hide and brush parameters.
func (h *handler) chart(w http.ResponseWriter, r *http.Request) (*scatter.Chart, bool) {
	cfg := h.cfg
	cfg.Target = r.URL.Path
	cfg.Logger = h.log
	c, err := scatter.Render(cfg)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return nil, false
	}
	q := r.URL.Query()
	if err := Hide(c, SplitList(q.Get("hide"))); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return nil, false
	}
	if b := q.Get("brush"); b != "" {
		rect, err := ParseRect(b)
		if err != nil {
			h.fail(w, http.StatusBadRequest, err)
			return nil, false
		}
		c.OnDragStart()
		c.OnDragEnd(&rect)
	}
	return c, true
}

func (h *handler) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "status", status, "error", err)
	} else {
		h.log.Debug("bad request", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

// ErrRect is returned for a malformed brush rectangle.
var ErrRect = errors.New("brush must be x0,y0,x1,y1")

// ParseRect reads "x0,y0,x1,y1" in chart coordinates.
func ParseRect(s string) (scatter.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return scatter.Rect{}, fmt.Errorf("%w: %q", ErrRect, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return scatter.Rect{}, fmt.Errorf("%w: %q", ErrRect, s)
		}
		v[i] = f
	}
	return scatter.Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Hide toggles each named category to hidden.
func Hide(c *scatter.Chart, categories []string) error {
	for _, name := range categories {
		if c.Hidden(name) {
			continue
		}
		if _, err := c.ToggleCategory(name); err != nil {
			return err
		}
	}
	return nil
}
