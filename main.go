package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appforge/appforge/internal/api"
	"github.com/appforge/appforge/internal/cli"
	"github.com/appforge/appforge/internal/engine"
	"github.com/appforge/appforge/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`appforge - Project scaffolding prompt generator

USAGE:
    appforge [OPTIONS] [COMMAND]

OPTIONS:
    --help      Show this help information
    --version   Print version information
    --init      Initialize the template library
    --serve     Start the HTTP API server
    --port      Port for the API server (default: 8080)

COMMANDS:
    (no command)             Start the interactive wizard
    generate <description>   Generate a guidance prompt
    preview <archetype>      Preview a template body
    archetypes               List the template catalog
    variants <archetype>     List template variants
    analyze <description>    Show the inferred project intent
    feedback <id> <1-5> <usage>  Record variant feedback
    init                     Write the default template library
    help                     Show CLI command help

EXAMPLES:
    appforge                                         # Interactive wizard
    appforge --init                                  # Initialize template library
    appforge --serve --port 9000                     # Start API on port 9000
    appforge generate "an online store for records"  # Generate a prompt
    appforge generate --type saas --experience expert "team billing platform"
    appforge analyze "a blog for weekly essays"      # Inspect intent detection
    appforge preview ecommerce                       # Preview a template

STORAGE:
    Default directory: ~/.appforge
    Override with: APPFORGE_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var serve bool
	var port int

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize the template library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&serve, "serve", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 8080, "Port for the API server")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("appforge version %s\n", version)
		os.Exit(0)
	}

	eng, err := engine.NewEngine("", version)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if initLib {
		if err := eng.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			os.Exit(1)
		}
		fmt.Println("Initialized appforge template library")
		return
	}

	if serve {
		srv := api.NewAPIServer(eng, port)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-stop
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Stop(ctx)
		}()

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("Error starting API server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(eng)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(ui.NewWizard(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
