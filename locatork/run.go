package locatork

import (
	"context"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Run is one execution of a set of expectations against a page
// The graph tag names the predicate each field is stored under.
type Run struct {
	ID       []byte    `graph:"id" msgpack:"id"`
	Page     string    `graph:"page" msgpack:"page"`
	URL      string    `graph:"url" msgpack:"url"`
	Engine   Engine    `graph:"engine" msgpack:"engine"`
	Started  time.Time `graph:"started" msgpack:"started"`
	Finished time.Time `graph:"finished" msgpack:"finished"`
	Results  []*Result `graph:"results" msgpack:"results"`
}

// NewRun with a fresh ID
func NewRun(page, url string, engine Engine) *Run {
	return &Run{
		ID:      uuid.NewV4().Bytes(),
		Page:    page,
		URL:     url,
		Engine:  engine,
		Started: time.Now(),
	}
}

// Execute the expectations and record the results
func (r *Run) Execute(ctx context.Context, l *Locator, expectations []Expectation) {
	r.Results = CheckAll(ctx, l, expectations)
	r.Finished = time.Now()
}

// IDString of the run
func (r *Run) IDString() string {
	id, err := uuid.FromBytes(r.ID)
	if err != nil {
		return string(r.ID)
	}
	return id.String()
}

// Failed results count
func (r *Run) Failed() int {
	failed := 0
	for _, result := range r.Results {
		if !result.Passed {
			failed++
		}
	}
	return failed
}

// Passed is true if every result passed
func (r *Run) Passed() bool {
	return r.Failed() == 0
}
