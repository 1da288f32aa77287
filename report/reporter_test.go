package report_test

import (
	"bytes"
	"strings"
	"testing"

	"gitlab.com/locatork/locatork"
	"gitlab.com/locatork/report"
)

func testRun(page string, passed bool) *locatork.Run {
	run := locatork.NewRun(page, "http://localhost/", locatork.EngineStatic)
	run.Results = []*locatork.Result{
		{Name: "locate postage cost", Passed: true, Got: []string{"5"}},
		{Name: "locate sales tax", Passed: passed, Got: []string{"20"}, Reason: "expected \"21\", got \"20\""},
	}
	run.Finished = run.Started
	return run
}

func TestReporter(t *testing.T) {
	r := report.New()
	first := testRun("checkout", true)
	r.Add(first)
	r.Add(testRun("cart", false))

	replaced := testRun("checkout-again", false)
	replaced.ID = first.ID
	r.Add(replaced)

	if r.Len() != 2 {
		t.Fatalf("expected 2 runs got %d", r.Len())
	}

	out := &bytes.Buffer{}
	r.Print(out)
	if strings.Count(out.String(), "\n") != 2 {
		t.Fatalf("expected summaries only:\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), first.IDString()+" ") || !strings.Contains(out.String(), "checkout-again") {
		t.Fatalf("expected replaced run in first position:\n%s", out.String())
	}

	out.Reset()
	r.Details = true
	r.Print(out)
	if !strings.Contains(out.String(), "\tFAIL locate sales tax: expected \"21\"") {
		t.Fatalf("expected failure details:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "\tPASS locate postage cost [\"5\"]") {
		t.Fatalf("expected pass details:\n%s", out.String())
	}
}
