package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	godaemon "github.com/sevlyar/go-daemon"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/daemon"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/lockfile"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/preview"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/tray"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "screenshot-daemon",
		Usage:   "global hotkey screen capture for Claude Code",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "status",
				Usage: "check whether the daemon is running and exit",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "start even if another instance appears to be running",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log all key presses (for troubleshooting)",
				Sources: cli.EnvVars("CLAUDE_SCREENSHOT_DEBUG"),
			},
			&cli.StringFlag{
				Name:  "hotkey",
				Usage: "capture hotkey for this session only (e.g. ctrl+alt+p, f9)",
			},
			&cli.StringFlag{
				Name:  "set-hotkey",
				Usage: "save a new capture hotkey to config and start",
			},
			&cli.StringFlag{
				Name:  "set-recapture-hotkey",
				Usage: "save a new recapture hotkey to config and start",
			},
			&cli.BoolFlag{
				Name:  "no-tray",
				Usage: "run without the system tray icon",
			},
			&cli.BoolFlag{
				Name:    "daemonize",
				Usage:   "detach and run in the background (Unix only)",
				Sources: cli.EnvVars("CLAUDE_SCREENSHOT_DAEMONIZE"),
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	if cmd.Bool("status") {
		if l, ok := lockfile.Running(); ok {
			fmt.Printf("Daemon is running (PID %d)\n", l.PID)
			return nil
		}
		return cli.Exit("Daemon is not running.", 1)
	}

	if v := cmd.String("set-hotkey"); v != "" {
		if _, err := config.Update("hotkey", v); err != nil {
			return err
		}
		log.Infof("Capture hotkey saved to config: %s", v)
	}
	if v := cmd.String("set-recapture-hotkey"); v != "" {
		if _, err := config.Update("recapture_hotkey", v); err != nil {
			return err
		}
		log.Infof("Recapture hotkey saved to config: %s", v)
	}

	if cmd.Bool("daemonize") {
		daemonCtx := &godaemon.Context{
			LogFileName: filepath.Join(config.Dir(), "daemon.log"),
			LogFilePerm: 0640,
			WorkDir:     "./",
			Umask:       027,
		}

		child, err := daemonCtx.Reborn()
		if err != nil {
			return fmt.Errorf("unable to daemonize: %w", err)
		}
		if child != nil {
			return nil // parent exits
		}
		defer daemonCtx.Release()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Warnf("Failed to load config: %v, using defaults", err)
		cfg = config.Defaults()
	}

	if cfg.EnablePreview {
		preview.Start()
	}

	d, err := daemon.New(cfg, daemon.Options{
		HotkeyOverride: cmd.String("hotkey"),
		Debug:          cmd.Bool("debug"),
		Force:          cmd.Bool("force"),
		Preview:        preview.Show,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ShowTray && !cmd.Bool("no-tray") {
		// systray needs the main goroutine; the daemon loop runs
		// alongside and quitting either side stops the other.
		errc := make(chan error, 1)
		go func() {
			err := d.Run(ctx)
			errc <- err
			if err != nil {
				log.Errorf("Daemon stopped: %v", err)
			}
			tray.Quit()
		}()

		tray.Run(cfg, tray.Hooks{
			CaptureNow: d.CaptureNow,
			OnQuit:     stop,
		})
		return <-errc
	}

	return d.Run(ctx)
}
