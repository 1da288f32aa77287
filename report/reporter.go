// Package report prints check runs for people
package report

import (
	"fmt"
	"io"
	"time"

	"gitlab.com/locatork/locatork"
)

// Reporter collects runs and prints them in the order they were added.
// Adding a run with an id already seen replaces it.
type Reporter struct {
	runs    []*locatork.Run
	byID    map[string]int
	Details bool // print every result, not only the summary
}

// New reporter
func New() *Reporter {
	return &Reporter{runs: make([]*locatork.Run, 0), byID: make(map[string]int)}
}

// Add a run
func (r *Reporter) Add(run *locatork.Run) {
	key := string(run.ID)
	if i, exist := r.byID[key]; exist {
		r.runs[i] = run
		return
	}
	r.byID[key] = len(r.runs)
	r.runs = append(r.runs, run)
}

// Len of the runs added
func (r *Reporter) Len() int {
	return len(r.runs)
}

// Print a summary line per run followed by its results if Details is set
func (r *Reporter) Print(writer io.Writer) {
	for _, run := range r.runs {
		PrintSummary(writer, run)
		if r.Details {
			PrintResults(writer, run, "\t")
		}
	}
}

// PrintSummary of a run on a single line
func PrintSummary(writer io.Writer, run *locatork.Run) {
	fmt.Fprintf(writer, "%s %s %s [%s] %d/%d passed in %s\n", run.IDString(), run.Started.Format(time.RFC3339),
		run.Page, run.Engine, len(run.Results)-run.Failed(), len(run.Results), run.Finished.Sub(run.Started))
}

// PrintResults one line per result
func PrintResults(writer io.Writer, run *locatork.Run, indent string) {
	for _, result := range run.Results {
		if result.Passed {
			fmt.Fprintf(writer, "%sPASS %s %q\n", indent, result.Name, result.Got)
			continue
		}
		fmt.Fprintf(writer, "%sFAIL %s: %s\n", indent, result.Name, result.Reason)
	}
}
