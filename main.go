package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lpc17xx/canfilter/api"
	"github.com/lpc17xx/canfilter/config"
	"github.com/lpc17xx/canfilter/service"
	"github.com/lpc17xx/canfilter/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		apiMode     = flag.Bool("api", false, "Start HTTP+WebSocket API server")
		tuiMode     = flag.Bool("tui", false, "Start the terminal inspector")
		fakeMode    = flag.Bool("fake", true, "Use the in-memory fake HAL (the only HAL this command supports)")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		bindAddr    = flag.String("bind", "", "API bind address, overrides config")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("canfilter %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if !*fakeMode {
		fmt.Fprintln(os.Stderr, "this command only supports -fake; hal.MMIO is not wired into it")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *bindAddr != "" {
		cfg.API.BindAddr = *bindAddr
	}

	switch {
	case *apiMode:
		runAPIServer(cfg)
	case *tuiMode:
		runTUI(cfg)
	default:
		args := flag.Args()
		if len(args) == 0 {
			printHelp()
			os.Exit(1)
		}
		runOneShot(args)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func runAPIServer(cfg *config.Config) {
	logger := log.New(os.Stdout, "canfilter: ", log.LstdFlags)
	server := api.NewServer(cfg.API.BindAddr, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nshutting down api server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
			}
		})
	}

	go func() {
		<-sigChan
		performShutdown()
	}()

	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "api server error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config) {
	session := service.NewSession("local", nil)
	interval := time.Duration(cfg.TUI.RefreshMS) * time.Millisecond
	t := tui.NewTUI(session, interval)
	if err := t.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

// runOneShot runs a single command (the same verbs the TUI accepts)
// against an ephemeral session, printing the documented return code.
func runOneShot(args []string) {
	session := service.NewSession("oneshot", nil)
	result := tui.Execute(session, joinArgs(args))
	fmt.Println(result)
}

func joinArgs(args []string) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		s += a
	}
	return s
}

func printHelp() {
	fmt.Println(`canfilter - LPC17xx CAN acceptance-filter table manager

Usage:
  canfilter [flags]
  canfilter [flags] <command> [args...]

Modes:
  -api              Start the HTTP+WebSocket API server
  -tui              Start the interactive terminal inspector
  (none)            Run a single one-shot command and exit

Flags:
  -fake             Use the in-memory fake HAL (default true)
  -config <path>    Path to a TOML config file
  -bind <addr>      API bind address, overrides config
  -version          Show version information
  -help             Show this help

One-shot commands (same verbs accepted by the TUI command line):
  insert-std <ctrl> <id>
  update-std <ctrl> <oldId> <newId>
  delete-std <ctrl> <id>
  insert-std-group <ctrl> <start> <end>
  update-std-group <ctrl> <oldStart> <oldEnd> <newStart> <newEnd>
  delete-std-group <ctrl> <start> <end>
  insert-ext <ctrl> <id>
  update-ext <ctrl> <oldId> <newId>
  delete-ext <ctrl> <id>
  insert-ext-group <ctrl> <start> <end>
  update-ext-group <ctrl> <oldStart> <oldEnd> <newStart> <newEnd>
  delete-ext-group <ctrl> <start> <end>
  reset
  mode <operating|bypass|off>`)
}
