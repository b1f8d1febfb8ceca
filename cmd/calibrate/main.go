package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/riyadrajan/updatedversion/internal/adaptive"
	"github.com/riyadrajan/updatedversion/internal/config"
	"github.com/riyadrajan/updatedversion/internal/log"
	"github.com/riyadrajan/updatedversion/internal/replay"
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
	scorer := adaptive.NewScorer(cfg.UserID, profilePath, adaptive.DefaultConfig())

	in := os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			stdlog.Fatalf("failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	fmt.Printf("Calibrating user %s (min %d samples)...\n", cfg.UserID, cfg.MinCalibrationSamples)

	samples := 0
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
		if !frame.FaceDetected {
			continue
		}

		scorer.AddCalibrationSample(frame.EAR, frame.Gaze, frame.Pitch, frame.Yaw, frame.Roll)
		samples++
	}
	if err := scanner.Err(); err != nil {
		stdlog.Fatalf("read error: %v", err)
	}

	if !scorer.FinalizeCalibration(cfg.MinCalibrationSamples) {
		stdlog.Fatalf("calibration failed: %d samples, need %d", samples, cfg.MinCalibrationSamples)
	}

	th := scorer.GetThresholds()
	fmt.Printf("Calibration complete (%d samples). Profile: %s\n", samples, profilePath)
	fmt.Printf("  ear=%.4f gaze=%.4f pitch=%.1f yaw=%.1f roll=%.1f\n",
		th.EAR, th.Gaze, th.Pitch, th.Yaw, th.Roll)
}

// #endregion main
