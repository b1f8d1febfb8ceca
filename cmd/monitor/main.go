package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/riyadrajan/updatedversion/internal/adaptive"
	"github.com/riyadrajan/updatedversion/internal/analyzer"
	"github.com/riyadrajan/updatedversion/internal/config"
	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/monitor"
	"github.com/riyadrajan/updatedversion/internal/pattern"
	"github.com/riyadrajan/updatedversion/internal/replay"
	"github.com/riyadrajan/updatedversion/internal/reporter"
)

// #region main
func main() {
	configPath := flag.String("config", "", "path to YAML config")
	input := flag.String("input", "-", "JSON-lines sample stream ('-' for stdin)")
	flag.Parse()

	log.Init("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	profilePath := adaptive.ProfilePath(cfg.CalibrationDir, cfg.UserID)

	analyzerCfg := analyzer.DefaultConfig()
	patternCfg := pattern.DefaultConfig()
	if cfg.WindowSize > 0 {
		patternCfg.WindowSize = cfg.WindowSize
	}
	monitorCfg := monitor.DefaultConfig()
	if cfg.FPS > 0 {
		monitorCfg.FPS = cfg.FPS
	}

	scorer := adaptive.NewScorer(cfg.UserID, profilePath, adaptive.DefaultConfig())
	mon := monitor.New(monitorCfg,
		analyzer.New(analyzerCfg),
		pattern.New(patternCfg),
		scorer)

	repCfg := reporter.DefaultConfig()
	repCfg.ServerURL = cfg.ServerURL
	repCfg.Enabled = cfg.ReportEnabled
	if cfg.ReportIntervalSeconds > 0 {
		repCfg.ReportInterval = time.Duration(cfg.ReportIntervalSeconds * float64(time.Second))
	}
	rep := reporter.New(repCfg)

	in := os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			stdlog.Fatalf("failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	fmt.Println("Study monitor ready.")
	fmt.Printf("  user: %s | calibrated: %v | server: %s\n",
		cfg.UserID, scorer.Calibrated(), cfg.ServerURL)

	frames := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var frame replay.FixtureFrame
		if err := json.Unmarshal(line, &frame); err != nil {
			log.Warn("skipping malformed sample", "err", err)
			continue
		}

		frames++
		res := mon.ProcessFrame(frame.Timestamp, frame.ToSample())
		rep.ReportDetection(res, frame.ToSample())

		for _, e := range res.Events {
			fmt.Printf("[%8.2fs] %s: %s\n", e.At, e.Type, e.Reason)
			handleEvent(rep, e)
		}
	}
	if err := scanner.Err(); err != nil {
		stdlog.Fatalf("read error: %v", err)
	}

	printSummary(frames, mon.Analyzer().ActivityPattern(), mon.Patterns().Summary())
}

// handleEvent forwards debounced edges to the session server and the lamp.
func handleEvent(rep *reporter.Reporter, e monitor.Event) {
	switch e.Type {
	case monitor.EventDistractionStart:
		rep.ReportEdge(true)
		rep.ReportLight(true)
	case monitor.EventDistractionEnd:
		rep.ReportEdge(false)
		rep.ReportLight(false)
	case monitor.EventFaceLost:
		rep.ReportEdge(true)
	case monitor.EventFaceRecovered:
		rep.ReportEdge(false)
	}
}

func printSummary(frames int, activities map[analyzer.ActivityType]float64, patterns pattern.Summary) {
	fmt.Printf("\nProcessed %d frames.\n", frames)

	fmt.Println("Activity shares:")
	for activity, share := range activities {
		fmt.Printf("  %-18s %5.1f%%\n", activity, share*100)
	}

	fmt.Println("Patterns:")
	fmt.Printf("  reading=%v thinking=%v phone=%v\n",
		patterns.Reading, patterns.Thinking, patterns.Phone)
	fmt.Printf("  blinks=%d natural=%v micro_movements=%v engagement=%.2f\n",
		patterns.BlinkCount, patterns.NaturalBlinks, patterns.MicroMovements,
		patterns.EngagementScore)
}

// #endregion main
