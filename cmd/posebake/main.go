// Command posebake evaluates a pose interpolator rig over a frame sweep and
// writes the pose weights as CSV or as a multichannel WAV file with one
// channel per pose.
//
// Usage:
//
//	posebake rig.toml weights.csv
//	posebake -rate 30 rig.yaml weights.wav       # 30 frames per second of audio
//	posebake -bits 24 -parallel rig.json out.wav # Evaluate poses concurrently
//
// The output format follows the output file extension unless -format is
// given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/tphakala/go-pose-interpolator/internal/rigfile"
)

const (
	// CLI defaults
	defaultFrameRate = 24
	defaultBitDepth  = bitsPerSample16
	minRequiredArgs  = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	format := flag.String("format", "", "Output format: csv or wav (default: from output extension)")
	rate := flag.Int("rate", defaultFrameRate, "WAV sample rate, one sample per frame")
	bits := flag.Int("bits", defaultBitDepth, "WAV bit depth: 16, 24 or 32")
	parallel := flag.Bool("parallel", false, "Evaluate poses concurrently (overrides the rig document)")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] rig.(toml|json|yaml) output.(csv|wav)\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}
	rigPath, outputPath := args[0], args[1]

	outFormat, err := resolveFormat(*format, outputPath)
	if err != nil {
		return err
	}
	if outFormat == formatWAV {
		if err := validateWAVParams(*rate, *bits); err != nil {
			return err
		}
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc, err := rigfile.Load(rigPath)
	if err != nil {
		return err
	}
	if *parallel {
		doc.Parallel = true
	}
	rig, err := rigfile.Build(doc, logger)
	if err != nil {
		return fmt.Errorf("build rig: %w", err)
	}

	logger.Debug("rig loaded",
		"path", rigPath,
		"name", rig.Interpolator.Name(),
		"inputs", len(rig.Interpolator.Inputs()),
		"poses", len(rig.Interpolator.Poses()),
		"parallel", doc.Parallel)

	ctx := context.Background()
	start := time.Now()
	baked, err := bake(ctx, rig)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	switch outFormat {
	case formatCSV:
		err = writeCSVFile(outputPath, baked)
	case formatWAV:
		err = writeWAVFile(outputPath, baked, *rate, *bits)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Baked %s -> %s\n", filepath.Base(rigPath), filepath.Base(outputPath))
	fmt.Printf("  %d frames x %d poses in %s\n", len(baked.frames), len(baked.poses), elapsed.Round(time.Microsecond))
	return nil
}
