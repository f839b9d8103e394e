package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/eventsphere-api/internal/config"
	"github.com/fakhrymubarak/eventsphere-api/internal/handler"
	"github.com/fakhrymubarak/eventsphere-api/internal/middleware"
	"github.com/fakhrymubarak/eventsphere-api/internal/offline"
)

// NewServeCommand creates the serve command, which runs a mock backend over
// the bundled dataset.
func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Run a mock EventSphere backend on the bundled events",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = config.GetServerPort()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, newMockServer(ctx, port))
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from server.port)")
	return cmd
}

// newMockServer wires the events handler, the rate limiter and the server
// timeouts from configuration. The limiter is cleaned up until ctx is done.
func newMockServer(ctx context.Context, port string) *http.Server {
	events := offline.MustBundled()
	all, _ := events.List(ctx)

	globalRate, globalBurst := config.GetGlobalRateLimiterConfig()
	routeRate, routeBurst := config.GetParamRateLimiterConfig()
	rl := middleware.NewRateLimiter(middleware.Limits{
		GlobalPerMinute: globalRate,
		GlobalBurst:     globalBurst,
		RoutePerMinute:  routeRate,
		RouteBurst:      routeBurst,
		CleanupAfter:    config.GetRateLimiterCleanupTimeout(),
	})
	rl.StartCleanup(ctx)

	router := handler.NewRouter(handler.NewEventsHandler(events, handler.NewBookingStore(all)), rl.Middleware)

	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeoutDuration("write_timeout", 10*time.Second),
		IdleTimeout:       config.GetServerTimeoutDuration("idle_timeout", 30*time.Second),
	}
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	logger := config.GetLogger()
	serverErr := make(chan error, 1)

	go func() {
		logger.Infow("Mock EventSphere backend listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Infow("Shutting down mock backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
