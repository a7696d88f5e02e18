package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pixelart/grid"
	"pixelart/render"
)

// Server is a wrapper around chi router.
type Server struct {
	Router *chi.Mux

	logger    *slog.Logger
	defaults  grid.Config
	maxUpload int64
}

// New returns a server converting uploads with defaults unless the request
// overrides them.
func New(logger *slog.Logger, defaults grid.Config, maxUpload int64) *Server {
	s := &Server{
		Router:    chi.NewRouter(),
		logger:    logger,
		defaults:  defaults,
		maxUpload: maxUpload,
	}

	s.Router.Use(
		middleware.Recoverer,
		middleware.RequestID,
		s.logRequests,
	)

	s.Router.Post("/api/pixelart", s.generate)
	s.Router.Post("/api/pixelart/chart/{format}", s.chart)
	s.Router.Post("/api/pixelart/legend", s.legend)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// load converts the uploaded "image" field using the form values as
// configuration.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*grid.Result, error) {
	if r.ContentLength > s.maxUpload {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", errTooLarge, r.ContentLength, s.maxUpload)
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errTooLarge, mbe.Limit)
		}
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	cfg, err := s.config(r)
	if err != nil {
		return nil, err
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: missing image: %w", errBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	logger := s.logger.With("request", middleware.GetReqID(r.Context()))
	return grid.Generate(logger, data, cfg)
}

func (s *Server) config(r *http.Request) (grid.Config, error) {
	cfg := s.defaults

	ints := []struct {
		name string
		dst  *int
	}{
		{"gridSize", &cfg.GridSize},
		{"maxColors", &cfg.MaxColors},
	}
	for _, f := range ints {
		v := r.FormValue(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", grid.ErrInvalidConfig, f.name, err)
		}
		*f.dst = n
	}

	var err error
	if v := r.FormValue("limit"); v != "" {
		if cfg.Limit, err = grid.ParseLimit(v); err != nil {
			return cfg, err
		}
	}
	if v := r.FormValue("resample"); v != "" {
		if cfg.Resample, err = grid.ParseResampler(v); err != nil {
			return cfg, err
		}
	}

	return cfg, cfg.Validate()
}

func chartOptions(r *http.Request) (render.ChartOptions, error) {
	opts := render.DefaultChartOptions()

	if v := r.FormValue("numbers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: numbers: %w", errBadRequest, err)
		}
		opts.ShowNumbers = b
	}
	if v := r.FormValue("cellSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > render.MaxCellSize {
			return opts, fmt.Errorf("%w: cellSize must be 0..%d, got %q", errBadRequest, render.MaxCellSize, v)
		}
		opts.CellSize = n
	}
	if _, ok := r.Form["gridColor"]; ok {
		c, err := render.ParseColor(r.FormValue("gridColor"))
		if err != nil {
			return opts, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		opts.GridColor = c
	}

	return opts, nil
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(res); err != nil {
		s.logger.Error("could not write response", "error", err)
	}
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	contentType, ok := contentTypes[format]
	if !ok {
		s.fail(w, r, fmt.Errorf("%w: unsupported format %q", errBadRequest, format))
		return
	}

	res, err := s.load(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := chartOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == "svg" {
		if res.Empty() {
			s.fail(w, r, render.ErrNoData)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if err = render.WriteSVG(w, res, opts); err != nil {
			s.logger.Error("could not write response", "error", err)
		}
		return
	}

	img, err := render.Chart(res, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if err = render.Encode(w, img, format); err != nil {
		s.logger.Error("could not write response", "error", err)
	}
}

func (s *Server) legend(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	img, err := render.Legend(res, render.DefaultSwatchSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err = render.Encode(w, img, "png"); err != nil {
		s.logger.Error("could not write response", "error", err)
	}
}

var contentTypes = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"jpeg": "image/jpeg",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
}

var (
	errBadRequest = errors.New("bad request")
	errTooLarge   = errors.New("upload too large")
)

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, grid.ErrDecode),
		errors.Is(err, grid.ErrInvalidConfig),
		errors.Is(err, render.ErrTooLarge):
		status = http.StatusBadRequest
	case errors.Is(err, errTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, render.ErrNoData):
		status = http.StatusUnprocessableEntity
	}

	if status >= 500 {
		s.logger.Error("request failed", "request", middleware.GetReqID(r.Context()), "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
