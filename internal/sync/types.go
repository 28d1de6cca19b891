package sync

import (
	"fmt"
	"io"
	"strings"

	"adp-lms-sync/internal/domain"
)

// Outcome is what happened to one worker during a run.
type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeWouldCreate Outcome = "would-create"
	OutcomeExists      Outcome = "skipped-exists"
	OutcomeInactive    Outcome = "skipped-inactive"
	OutcomeDuplicate   Outcome = "skipped-duplicate"
	OutcomeFailed      Outcome = "failed"
)

type Result struct {
	Worker    domain.Worker
	Outcome   Outcome
	AccountID string
	// Reason explains skipped and failed outcomes.
	Reason string
	Err    error
	// Warning is set when the account was created but a follow-up step
	// (onboarding enrollment) failed.
	Warning string
}

type Report struct {
	Results []Result

	Created     int
	WouldCreate int
	Existing    int
	Inactive    int
	Duplicates  int
	Failed      int
	Warnings    int

	// Aborted is set when an authentication failure stopped the run early.
	Aborted bool
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeCreated:
		r.Created++
	case OutcomeWouldCreate:
		r.WouldCreate++
	case OutcomeExists:
		r.Existing++
	case OutcomeInactive:
		r.Inactive++
	case OutcomeDuplicate:
		r.Duplicates++
	case OutcomeFailed:
		r.Failed++
	}
	if res.Warning != "" {
		r.Warnings++
	}
}

func (r Report) Processed() int { return len(r.Results) }

// Failures returns the failed results in processing order.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

var rule = strings.Repeat("=", 60)

// Summary prints the end-of-run block.
func (r Report) Summary(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nSYNC SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Total ADP workers processed: %d\n", r.Processed())
	fmt.Fprintf(&b, "New accounts created:        %d\n", r.Created)
	if r.WouldCreate > 0 {
		fmt.Fprintf(&b, "Would create (dry run):      %d\n", r.WouldCreate)
	}
	fmt.Fprintf(&b, "Already had accounts:        %d\n", r.Existing)
	if r.Inactive > 0 {
		fmt.Fprintf(&b, "Skipped (inactive):          %d\n", r.Inactive)
	}
	if r.Duplicates > 0 {
		fmt.Fprintf(&b, "Skipped (duplicate):         %d\n", r.Duplicates)
	}
	fmt.Fprintf(&b, "Errors:                      %d\n", r.Failed)
	if r.Warnings > 0 {
		fmt.Fprintf(&b, "Warnings:                    %d\n", r.Warnings)
	}
	if r.Aborted {
		b.WriteString("Run aborted on authentication failure.\n")
	}
	b.WriteString(rule + "\n")

	for _, f := range r.Failures() {
		fmt.Fprintf(&b, "  x %s <%s>: %s\n", f.Worker.DisplayName(), f.Worker.Email, f.Reason)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DecisionKind is the offline classification of a worker against the
// current account list.
type DecisionKind string

const (
	DecisionHasAccount   DecisionKind = "has_account"
	DecisionNeedsAccount DecisionKind = "needs_account"
	DecisionInactive     DecisionKind = "inactive"
	DecisionInvalid      DecisionKind = "invalid"
	DecisionDuplicate    DecisionKind = "duplicate"
)

type Decision struct {
	Worker domain.Worker
	Kind   DecisionKind
	Reason string
}
