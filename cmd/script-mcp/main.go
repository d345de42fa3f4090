package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/scriptparse/script-mcp/internal/client"
	"github.com/scriptparse/script-mcp/internal/config"
	"github.com/scriptparse/script-mcp/internal/server"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8081", "HTTP port (only used with --transport http)")
	flag.Parse()

	// Logs go to stderr: with the stdio transport, stdout belongs to the
	// protocol.
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadAdapter()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	backend := client.New(cfg.APIBaseURL, cfg.APIKey, log)
	srv := server.New(backend)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *transport {
	case "stdio":
		log.Info().Str("backend", cfg.APIBaseURL).Msg("script-mcp server starting (stdio)")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		log.Info().Str("addr", addr).Str("backend", cfg.APIBaseURL).Msg("script-mcp server listening")
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal().Err(err).Msg("http server error")
		}
	default:
		log.Fatal().Str("transport", *transport).Msg("unknown transport (use stdio or http)")
	}
}
