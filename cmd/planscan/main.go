package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"planscan/internal/detect"
	"planscan/internal/raster"
	"planscan/internal/render"
	"planscan/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("planscan - floor-plan geometry extraction")
	fmt.Println()
	fmt.Println("Usage: planscan <command> [options] <image>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  room       Detect the room containing a seed pixel (-x, -y required)")
	fmt.Println("  envelope   Detect the building outline and spanning walls")
	fmt.Println("  walls      Detect only the spanning walls of the building")
	fmt.Println("  serve      Run as an MCP tool server on stdio")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -x, -y       Seed pixel for room detection")
	fmt.Println("  -ppu         Pixels per length unit (default 0.1, i.e. 1px = 1cm at 0.1)")
	fmt.Println("  -smooth      Gaussian blur radius applied before detection (0 = off)")
	fmt.Println("  -overlay     Write a visualization image to this path")
	fmt.Println("  --version    Print version information")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PLANSCAN_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("Results are written to stdout as JSON; logs go to stderr.")
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("planscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help", "":
			usage()
			return
		}
	}
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// Logging goes to stderr (stdout carries the JSON result)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)
	debug := os.Getenv("PLANSCAN_LOG_LEVEL") == "debug"
	if debug {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Printf("planscan %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	command := os.Args[1]
	if command == "serve" {
		log.Printf("planscan MCP server %s starting", Version)
		if err := server.New().Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	seedX := fs.Int("x", -1, "seed pixel x")
	seedY := fs.Int("y", -1, "seed pixel y")
	ppu := fs.Float64("ppu", 0.1, "pixels per length unit")
	smooth := fs.Float64("smooth", 0, "gaussian blur radius before detection")
	overlayPath := fs.String("overlay", "", "write visualization image to this path")
	fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		log.Fatalf("missing image path")
	}
	path := fs.Arg(0)

	var buf *raster.Buffer
	var err error
	if *smooth > 0 {
		buf, err = raster.LoadImageSmoothed(path, *smooth)
	} else {
		buf, err = raster.LoadImage(path)
	}
	if err != nil {
		log.Fatalf("load %s: %v", path, err)
	}
	log.Printf("loaded %s (%dx%d)", path, buf.Width, buf.Height)

	switch command {
	case "room":
		if *seedX < 0 || *seedY < 0 {
			log.Fatalf("room requires -x and -y")
		}
		result := detect.DetectRoomAtPixel(buf, *seedX, *seedY, detect.DefaultRoomOptions(*ppu))
		if result == nil {
			log.Fatalf("no room found at (%d, %d)", *seedX, *seedY)
		}
		emit(result)
		if *overlayPath != "" {
			ov := render.NewOverlay(buf.ToImage(), render.DefaultStyle())
			ov.DrawRoom(result, fmt.Sprintf("room @ %d,%d", *seedX, *seedY))
			if err := ov.Save(*overlayPath); err != nil {
				log.Fatalf("overlay: %v", err)
			}
			log.Printf("overlay written to %s", *overlayPath)
		}

	case "envelope":
		result := detect.DetectEnvelope(buf, detect.DefaultEnvelopeOptions(*ppu))
		if result == nil {
			log.Fatalf("no building outline found")
		}
		emit(result)
		if *overlayPath != "" {
			ov := render.NewOverlay(buf.ToImage(), render.DefaultStyle())
			ov.DrawEnvelope(result)
			if err := ov.Save(*overlayPath); err != nil {
				log.Fatalf("overlay: %v", err)
			}
			log.Printf("overlay written to %s", *overlayPath)
		}

	case "walls":
		result := detect.DetectEnvelope(buf, detect.DefaultEnvelopeOptions(*ppu))
		if result == nil {
			log.Fatalf("no building outline found")
		}
		emit(result.SpanningWalls)
		if *overlayPath != "" {
			ov := render.NewOverlay(buf.ToImage(), render.DefaultStyle())
			ov.DrawSpanningWalls(result.SpanningWalls)
			if err := ov.Save(*overlayPath); err != nil {
				log.Fatalf("overlay: %v", err)
			}
			log.Printf("overlay written to %s", *overlayPath)
		}

	default:
		log.Fatalf("unknown command %q (try --help)", command)
	}
}

// emit writes v as indented JSON to stdout.
func emit(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
