// Package sync creates learning-platform accounts for active workers that
// do not have one yet.
//
// A run is sequential and stateless: every target worker is looked up and,
// if missing, created, at most once per run. Per-worker failures are
// recorded and the run continues; an authentication failure stops it.
package sync

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/providers"
)

type Options struct {
	// DryRun reports would-create instead of creating accounts.
	DryRun bool
	// OnboardingCourseID, when set, is the course new accounts are enrolled in.
	OnboardingCourseID string
}

type Reconciler struct {
	Store providers.AccountStore
	Opts  Options
	Log   zerolog.Logger
}

func NewReconciler(store providers.AccountStore, opts Options, log zerolog.Logger) *Reconciler {
	return &Reconciler{Store: store, Opts: opts, Log: log}
}

// Sync processes workers in order. The returned report is complete up to
// the point of return, also when err is non-nil.
func (r *Reconciler) Sync(ctx context.Context, workers []domain.Worker) (Report, error) {
	var rep Report
	seen := newSeenSet()

	for _, w := range workers {
		if err := ctx.Err(); err != nil {
			rep.Aborted = true
			return rep, apperr.Wrap(apperr.CodeTransient, "sync", err)
		}

		res, err := r.syncOne(ctx, w, seen)
		rep.add(res)
		r.logResult(res)

		if err != nil {
			rep.Aborted = true
			return rep, err
		}
	}
	return rep, nil
}

// syncOne returns a non-nil error only when the run must stop.
func (r *Reconciler) syncOne(ctx context.Context, w domain.Worker, seen *seenSet) (Result, error) {
	res := Result{Worker: w}

	switch kind, reason := screen(w, seen); kind {
	case DecisionDuplicate:
		res.Outcome, res.Reason = OutcomeDuplicate, reason
		return res, nil
	case DecisionInactive:
		res.Outcome, res.Reason = OutcomeInactive, reason
		return res, nil
	case DecisionInvalid:
		res.Outcome, res.Reason = OutcomeFailed, reason
		res.Err = apperr.New(apperr.CodeValidation, "sync", reason)
		return res, nil
	}

	acc, err := r.Store.FindUserByEmail(ctx, w.Email)
	switch {
	case err == nil:
		res.Outcome, res.AccountID = OutcomeExists, acc.ID
		return res, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return failed(res, err)
	}

	if r.Opts.DryRun {
		res.Outcome = OutcomeWouldCreate
		return res, nil
	}

	acc, err = r.Store.CreateUser(ctx, w)
	switch {
	case errors.Is(err, apperr.ErrDuplicate):
		res.Outcome, res.Reason = OutcomeExists, "account created concurrently"
		return res, nil
	case err != nil:
		return failed(res, err)
	}
	res.Outcome, res.AccountID = OutcomeCreated, acc.ID

	if course := r.Opts.OnboardingCourseID; course != "" {
		if err := r.Store.Enroll(ctx, acc.ID, course); err != nil {
			res.Warning = "enrollment in course " + course + " failed: " + err.Error()
		}
	}
	return res, nil
}

func failed(res Result, err error) (Result, error) {
	res.Outcome, res.Reason, res.Err = OutcomeFailed, err.Error(), err
	if errors.Is(err, apperr.ErrAuth) {
		return res, err
	}
	return res, nil
}

func (r *Reconciler) logResult(res Result) {
	var ev *zerolog.Event
	switch res.Outcome {
	case OutcomeFailed:
		ev = r.Log.Error().Str("reason", res.Reason)
	case OutcomeCreated, OutcomeWouldCreate:
		ev = r.Log.Info()
	default:
		ev = r.Log.Debug().Str("reason", res.Reason)
	}
	ev = ev.Str("outcome", string(res.Outcome)).
		Str("worker", res.Worker.DisplayName()).
		Str("email", res.Worker.Email)
	if res.AccountID != "" {
		ev = ev.Str("account_id", res.AccountID)
	}
	ev.Msg("worker processed")

	if res.Warning != "" {
		r.Log.Warn().Str("email", res.Worker.Email).Msg(res.Warning)
	}
}
