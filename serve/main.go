// Command serve is a stub omnirec service for development and end-to-end
// testing of the picker. It listens on the service socket, answers
// query_selection with a selection configured on the command line, and keeps
// store_token / validate_token state in memory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	picker "github.com/omnirec/picker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	verbose := flag.Bool("verbose", false, "log every request")
	sourceType := flag.String("source-type", "monitor", "selection source type: monitor, window, or region")
	sourceID := flag.String("source-id", "DP-1", "selection source identifier")
	region := flag.String("region", "", "region geometry as x,y,width,height (source-type region only)")
	noSelection := flag.Bool("no-selection", false, "answer queries with no_selection")
	tokenTTL := flag.Duration("token-ttl", 0, "approval token lifetime (0 = never expires)")
	flag.Parse()

	if *showVersion {
		fmt.Println("omnirec stub service", Version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	resp, err := buildSelection(*sourceType, *sourceID, *region, *noSelection)
	if err != nil {
		slog.Error("invalid selection flags", "error", err)
		os.Exit(1)
	}

	tokens := NewTokenStore(*tokenTTL)
	socketPath := picker.SocketPath()

	slog.Info("starting", "socket", socketPath, "source_type", *sourceType, "source_id", *sourceID)

	srv, err := NewServer(socketPath, &StaticSelection{Response: resp, Tokens: tokens}, tokens)
	if err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down")
		srv.Close()
		os.Exit(0)
	}()

	slog.Info("ready")
	if err := srv.Serve(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func buildSelection(sourceType, sourceID, region string, noSelection bool) (*picker.Response, error) {
	if noSelection {
		return &picker.Response{Type: picker.TypeNoSelection}, nil
	}

	resp := &picker.Response{
		Type:       picker.TypeSelection,
		SourceType: sourceType,
		SourceID:   sourceID,
	}

	switch sourceType {
	case picker.SourceMonitor, picker.SourceWindow:
		return resp, nil
	case picker.SourceRegion:
		geom, err := parseRegion(region)
		if err != nil {
			return nil, err
		}
		resp.Geometry = geom
		return resp, nil
	default:
		return nil, fmt.Errorf("unknown source type %q", sourceType)
	}
}

func parseRegion(s string) (*picker.Geometry, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("region must be x,y,width,height, got %q", s)
	}
	var geom picker.Geometry
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &geom.X, &geom.Y, &geom.Width, &geom.Height); err != nil {
		return nil, fmt.Errorf("region must be x,y,width,height, got %q", s)
	}
	return &geom, nil
}
