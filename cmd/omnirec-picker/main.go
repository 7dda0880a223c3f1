// Command omnirec-picker resolves the capture selection for the desktop
// portal. The portal invokes it when a screencast request needs source
// selection; instead of showing its own chooser it asks the omnirec service
// for the user's pre-selected target and prints it in the format the portal
// expects: [SELECTION]/<kind>:<id>. When the service is unreachable or has
// no selection, the standard share picker is delegated to.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	picker "github.com/omnirec/picker"
	"github.com/omnirec/picker/consent"
	"github.com/omnirec/picker/fallback"
	"github.com/omnirec/picker/ipc"
	"github.com/omnirec/picker/logging"
	"github.com/omnirec/picker/windowlist"
	"github.com/omnirec/picker/workflow"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dryRun      bool
		sourceType  string
		sourceID    string
		verbose     bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("omnirec-picker", pflag.ContinueOnError)
	flags.BoolVar(&dryRun, "dry-run", false, "test the consent dialog without talking to the service")
	flags.StringVar(&sourceType, "source-type", "monitor", "dry-run source type: monitor, window, or region")
	flags.StringVar(&sourceID, "source-id", "DP-1", "dry-run source identifier")
	flags.BoolVar(&verbose, "verbose", false, "log debug records")
	flags.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flags)
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if showVersion {
		fmt.Println("omnirec-picker", Version)
		return 0
	}

	cfg, err := picker.LoadConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = picker.DefaultConfig()
	}

	logging.Setup(picker.ResolveLogFile(cfg), verbose)
	slog.Info("picker started", "pid", os.Getpid(), "version", Version)

	provider := consent.Probe(picker.ResolveDialogCommand(cfg))

	if dryRun {
		return runDryRun(provider, sourceType, sourceID)
	}

	socketPath := picker.SocketPath()
	slog.Info("querying selection", "socket", socketPath)

	w := &workflow.Workflow{
		Dial: func() (workflow.Transport, error) {
			return ipc.Dial(socketPath)
		},
		Consent:  provider,
		Fallback: fallback.New(picker.ResolveFallbackPicker(cfg)),
		Windows:  windowlist.FromEnv(),
		Stdout:   os.Stdout,
	}
	code := w.Run()
	slog.Info("picker exiting", "code", code)
	return code
}

// runDryRun exercises the consent flow without transport. The decision and a
// generated token are reported on stderr; nothing is persisted.
func runDryRun(provider consent.Provider, sourceType, sourceID string) int {
	fmt.Fprintf(os.Stderr, "[dry-run] source_type=%s source_id=%s\n", sourceType, sourceID)

	switch provider.Ask(consent.Describe(sourceType, sourceID)) {
	case consent.AlwaysAllow:
		token, err := consent.NewApprovalToken()
		if err != nil {
			fmt.Fprintf(os.Stderr, "[dry-run] token generation failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(os.Stderr, "[dry-run] result: approved (always allow)")
		fmt.Fprintf(os.Stderr, "[dry-run] generated token: %s (not stored)\n", token)
		return 0
	case consent.AllowOnce:
		fmt.Fprintln(os.Stderr, "[dry-run] result: approved (allow once)")
		return 0
	default:
		fmt.Fprintln(os.Stderr, "[dry-run] result: denied")
		return 1
	}
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `omnirec-picker — capture source picker for the desktop portal.

Queries the omnirec service for the current capture selection and prints it
to stdout in portal format. Falls back to the standard share picker when no
selection is available.

Options:
%s`, flags.FlagUsages())
}
