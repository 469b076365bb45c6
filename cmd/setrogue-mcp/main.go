package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/setrogue/internal/config"
	srmcp "github.com/peterkuimelis/setrogue/internal/mcp"
	srnet "github.com/peterkuimelis/setrogue/internal/net"
)

func main() {
	catalogFile := flag.String("catalog", "catalog.yaml", "path to catalog file (empty for built-ins only)")
	flag.Parse()

	// stdout carries the MCP protocol.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

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

	s := server.NewMCPServer("setrogue", "1.0.0")
	srmcp.NewToolbox(lobby).RegisterTools(s)

	slog.Info("serving MCP on stdio", "catalog", *catalogFile)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
