package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "svw.info/pyramath/internal/adapters/http"
	"svw.info/pyramath/internal/compare"
	"svw.info/pyramath/internal/generator"
	"svw.info/pyramath/internal/hint"
	"svw.info/pyramath/internal/infrastructure/storage"
	"svw.info/pyramath/internal/reward"
	"svw.info/pyramath/internal/solver"
	"svw.info/pyramath/internal/target"
	"svw.info/pyramath/internal/usecase"
	"svw.info/pyramath/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	catalogDir := flag.String("catalog-dir", "./catalog", "directory of journey/tomb/compare YAML files")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(*levelStr)}))

	// Wire providers → use cases → HTTP adapter
	s := solver.NewPropagationSolver()
	uc := usecase.NewService(
		generator.NewPyramidGenerator(s),
		validator.New(s),
		hint.NewPropagation(s),
		reward.NewEngine(),
		compare.NewGenerator(),
		target.NewSearcher(),
		storage.NewFS(*catalogDir),
		logger,
	)
	cat, err := uc.Catalog(context.Background())
	if err != nil {
		logger.Error("catalog", "dir", *catalogDir, "err", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	httpadapter.New(uc).Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening",
		"addr", *addr,
		"catalog", *catalogDir,
		"journeys", len(cat.Journeys),
		"tombs", len(cat.Tombs),
		"stages", len(cat.CompareStages),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
