package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/server"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("screenshot-mcp %s\n", version)
			return
		case "--help", "-h", "help":
			fmt.Println("screenshot-mcp - MCP server for screen capture")
			fmt.Println()
			fmt.Println("Usage: screenshot-mcp")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Code).")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CLAUDE_SCREENSHOT_LOG_LEVEL=debug   Enable debug logging")
			fmt.Println("  CLAUDE_SCREENSHOT_CONFIG_DIR=<dir>  Override the config directory")
			return
		}
	}

	// stdout carries the protocol; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	if os.Getenv("CLAUDE_SCREENSHOT_LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	server.Version = version
	srv := server.New()
	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
