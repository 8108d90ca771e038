package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"hop/internal/observ"
)

// TimingReport is the machine-readable form of a timer summary.
type TimingReport struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// NewTimingReport snapshots timer. kind names the command ("run", "check").
func NewTimingReport(kind, path string, timer *observ.Timer) TimingReport {
	if kind == "" {
		kind = "pipeline"
	}
	rep := timer.Report()
	phases := rep.Phases
	if phases == nil {
		phases = []observ.PhaseReport{}
	}
	return TimingReport{Kind: kind, Path: path, TotalMS: rep.TotalMS, Phases: phases}
}

// Headline is a one-line summary for human output.
func (r TimingReport) Headline() string {
	msg := fmt.Sprintf("timings (%s): total %.2f ms", r.Kind, r.TotalMS)
	if r.Path != "" {
		msg += " (" + r.Path + ")"
	}
	return msg
}

// WriteJSON writes the report as a single JSON line.
func (r TimingReport) WriteJSON(w io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
