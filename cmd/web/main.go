package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterkuimelis/setrogue/internal/config"
	srnet "github.com/peterkuimelis/setrogue/internal/net"
	"github.com/peterkuimelis/setrogue/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	catalogFile := flag.String("catalog", "catalog.yaml", "path to catalog file (empty for built-ins only)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	var catalog *config.Catalog
	if *catalogFile != "" {
		c, err := config.Load(*catalogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		catalog = c
	}
	lobby, err := srnet.NewLobby(catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(lobby)
	addr := fmt.Sprintf(":%d", *port)
	slog.Info("setrogue web listening", "url", fmt.Sprintf("http://localhost:%d", *port))
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
