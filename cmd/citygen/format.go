package main

import (
	"fmt"
	"io"

	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
			if e.ConflictWith != "" {
				fmt.Fprintf(w, "    conflicts with: %s\n", e.ConflictWith)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, x := range r.Warnings {
			printResult(w, x)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, x validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", x.Level, x.Message)
	switch {
	case x.ConfigPath != "":
		fmt.Fprintf(w, "    -> %s = %v\n", x.ConfigPath, x.ActualValue)
	case x.POI != "":
		fmt.Fprintf(w, "    -> poi %s\n", x.POI)
	}
	if x.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", x.Expected)
	}
	for _, s := range x.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printMetrics(w io.Writer, m generate.Metrics) {
	status := "VALIDATED"
	if !m.AccessibilityValidated {
		status = "NOT VALIDATED"
	}

	fmt.Fprintln(w, "Generation Summary")
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "  %-22s %d\n", "Repositioned:", m.RepositionedCount)
	fmt.Fprintf(w, "  %-22s %.1f\n", "Target spacing:", m.TargetSpacing)
	fmt.Fprintf(w, "  %-22s %.1f / %.1f / %.1f\n", "Spacing min/avg/max:", m.MinSpacing, m.AverageSpacing, m.MaxSpacing)
	fmt.Fprintf(w, "  %-22s %.1f\n", "Nearest neighbour avg:", m.NearestNeighborAvg)
	fmt.Fprintf(w, "  %-22s %s\n", "Quadrants:", m.QuadrantCoverage)
	if m.PackingShortfall > 0 {
		fmt.Fprintf(w, "  %-22s %d\n", "Packing shortfall:", m.PackingShortfall)
	}
	fmt.Fprintf(w, "  %-22s %s (%.0f%% reachable)\n", "Accessibility:", status, m.ReachableRatio*100)
}
