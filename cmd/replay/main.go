package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/riyadrajan/updatedversion/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	jsonOut := flag.Bool("json", false, "output verdicts as JSON instead of table")
	verbose := flag.Bool("verbose", false, "print every frame verdict")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--json] [--verbose]")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath, *jsonOut, *verbose))
}

// #endregion main

// #region run

func run(fixturePath string, jsonOut, verbose bool) int {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	verdicts, patterns := replay.ReplayFixture(f)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdicts); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			return 2
		}
	} else {
		if f.Description != "" {
			fmt.Printf("Fixture: %s\n", f.Description)
		}
		if verbose {
			for _, v := range verdicts {
				fmt.Printf("%4d  t=%8.2f  %-18s distracted=%-5v focus=%5.1f engagement=%.2f\n",
					v.Frame, v.Timestamp, v.Activity, v.Distracted, v.FocusScore, v.Engagement)
				for _, e := range v.Events {
					fmt.Printf("      event %s: %s\n", e.Type, e.Reason)
				}
			}
		}

		s := replay.Summarize(verdicts, patterns)
		fmt.Printf("\nFrames: %d  distracted: %d  face loss: %d  events: %d  mean focus: %.1f\n",
			s.TotalFrames, s.DistractedFrames, s.FaceLossFrames, s.EventCount, s.MeanFocusScore)
		for activity, count := range s.Activities {
			fmt.Printf("  %-18s %d\n", activity, count)
		}
	}

	// Expectations gate the exit code so fixtures work in CI.
	mismatches := replay.Verify(f, verdicts)
	if len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "MISMATCH frame %d: %s (expected %q, got %q)\n",
				m.Frame, m.Detail, m.Expected, m.Got)
		}
		return 1
	}
	if len(f.ExpectedResults) > 0 {
		fmt.Printf("All %d expectations matched.\n", len(f.ExpectedResults))
	}
	return 0
}

// #endregion run
