package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/conductor/pkg/scenario"
	"github.com/matzehuels/conductor/pkg/trace"
)

// serveCommand creates the serve command hosting the timeline inspector.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <scenario.toml>",
		Short: "Serve a replayed scenario over HTTP for inspection",
		Long: `Serve a replayed scenario over HTTP for inspection.

The serve command replays a scenario once at startup and exposes the
result:

  GET /healthz    liveness probe
  GET /state      final navigation state as JSON
  GET /trace      recorded event timeline as JSON
  GET /graph.svg  timeline rendered as an SVG diagram

The server shuts down gracefully on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe replays the scenario and blocks serving the inspector until ctx
// is cancelled.
func (c *CLI) runServe(ctx context.Context, input, addr string) error {
	s, err := scenario.Load(input)
	if err != nil {
		return err
	}

	result, err := scenario.Run(s, scenario.RunOptions{Hooks: newLogHooks(c.Logger)})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.inspectorRouter(result),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	c.Logger.Info("serving scenario", "scenario", result.Scenario, "addr", addr, "events", len(result.Events))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// inspectorRouter builds the HTTP routes for a replayed scenario.
func (c *CLI) inspectorRouter(result *scenario.Result) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/state", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, result)
	})

	r.Get("/trace", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := trace.Write(result.Events, w); err != nil {
			c.Logger.Error("write trace", "error", err)
		}
	})

	r.Get("/graph.svg", func(w http.ResponseWriter, _ *http.Request) {
		svg, err := trace.RenderSVG(trace.ToDOT(result.Events))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
