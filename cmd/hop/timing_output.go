package main

import (
	"io"
	"os"
	"time"

	"hop/internal/buildpipeline"
	"hop/internal/driver"
)

// printTimings writes the phase report: as JSON on stdout next to json or
// sarif diagnostics, as a table on stderr otherwise.
func printTimings(format string, report driver.TimingReport) {
	if format == "json" || format == "sarif" {
		if err := report.WriteJSON(os.Stdout); err != nil {
			fprintf(os.Stderr, "hop: timings: %v\n", err)
		}
		return
	}
	fprintf(os.Stderr, "%s\n", report.Headline())
	for _, p := range report.Phases {
		fprintf(os.Stderr, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fprintf(os.Stderr, "  // %s", p.Note)
		}
		fprintf(os.Stderr, "\n")
	}
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings, cached bool, ran time.Duration) {
	if out == nil {
		return
	}
	if timings.Has(buildpipeline.StageLoad) {
		fprintf(out, "loaded %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageLoad)))
	}
	if cached {
		fprintf(out, "cached %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageCache)))
	} else if timings.Has(buildpipeline.StageCompile) || timings.Has(buildpipeline.StageCache) {
		compiled := timings.Sum(buildpipeline.StageCache, buildpipeline.StageCompile)
		fprintf(out, "compiled %.1f ms\n", toMillis(compiled))
	}
	if ran > 0 {
		fprintf(out, "ran %.1f ms\n", toMillis(ran))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
