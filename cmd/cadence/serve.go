package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/cadence/internal/mcp"
	"github.com/rpggio/cadence/internal/transport"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server and publisher",
		Long: `Runs the REST API with the MCP endpoint mounted at /mcp, or an MCP
server over stdin/stdout with --transport stdio. The publisher runs alongside
either transport when publisher.enabled is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().String("transport", "", "override transport.mode (http or stdio)")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, closeDB, err := c.openApp(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if n, err := a.Accounts.PurgeExpiredTokens(ctx, time.Now()); err != nil {
		c.logger.Warn("failed to purge expired tokens", "error", err)
	} else if n > 0 {
		c.logger.Info("purged expired tokens", "count", n)
	}

	loc, err := c.cfg.Location()
	if err != nil {
		return fmt.Errorf("calendar location: %w", err)
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services:        a.MCPServices(),
		Resolver:        a.Services.Accounts,
		AuthEnabled:     c.cfg.Auth.Enabled,
		TransportMode:   c.cfg.Transport.Mode,
		LocalUserID:     transport.DefaultLocalUserID,
		DefaultLocation: loc,
		Logger:          c.logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if c.cfg.Publisher.Enabled {
		pub := a.NewPublisher(c.cfg.Publisher.Schedule)
		g.Go(func() error { return pub.Run(ctx) })
	}

	if c.cfg.Transport.Mode == "stdio" {
		g.Go(func() error {
			defer cancel()
			return c.runStdio(ctx, mcpServer)
		})
		return g.Wait()
	}

	handler := transport.NewServer(transport.Config{
		Services:        a.Services,
		AuthEnabled:     c.cfg.Auth.Enabled,
		LocalUserID:     transport.DefaultLocalUserID,
		CORSOrigins:     c.cfg.Server.CORSOrigins,
		DefaultLocation: loc,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		),
		Logger: c.logger,
	})
	httpServer := &http.Server{
		Addr:              c.cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: c.cfg.Server.ReadHeaderTimeout.Duration,
	}

	g.Go(func() error {
		c.logger.Info("server listening", "addr", httpServer.Addr, "auth", c.cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return waitForShutdown(c, httpServer)
	})
	return g.Wait()
}

func (c *cli) runStdio(ctx context.Context, server *sdkmcp.Server) error {
	c.logger.Info("starting stdio transport", "auth", "disabled", "user_id", transport.DefaultLocalUserID)
	// Run blocks until stdin closes or ctx is cancelled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func waitForShutdown(c *cli, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	c.logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
