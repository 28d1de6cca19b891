package sync

import (
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/mappers"
)

// Plan classifies workers against a snapshot of existing accounts without
// calling either API. Workers are deduplicated the same way Sync does.
func Plan(workers []domain.Worker, accounts []domain.Account) []Decision {
	have := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if e := domain.NormalizeEmail(a.Email); e != "" {
			have[e] = true
		}
	}

	seen := newSeenSet()
	out := make([]Decision, 0, len(workers))
	for _, w := range workers {
		kind, reason := screen(w, seen)
		if kind == "" {
			if have[domain.NormalizeEmail(w.Email)] {
				kind = DecisionHasAccount
			} else {
				kind = DecisionNeedsAccount
			}
		}
		out = append(out, Decision{Worker: w, Kind: kind, Reason: reason})
	}
	return out
}

// Count tallies decisions by kind.
func Count(decisions []Decision) map[DecisionKind]int {
	out := map[DecisionKind]int{}
	for _, d := range decisions {
		out[d.Kind]++
	}
	return out
}

// seenSet remembers workers already taken in a run, by identity and by
// normalized email.
type seenSet struct {
	keys   map[string]bool
	emails map[string]bool
}

func newSeenSet() *seenSet {
	return &seenSet{keys: map[string]bool{}, emails: map[string]bool{}}
}

// screen rejects workers that must not reach the account store. An empty
// kind means the worker is eligible; it is then marked as seen.
func screen(w domain.Worker, seen *seenSet) (DecisionKind, string) {
	if k := w.Key(); k != "" {
		if seen.keys[k] {
			return DecisionDuplicate, "worker listed more than once"
		}
		seen.keys[k] = true
	}
	if !w.Active() {
		return DecisionInactive, "worker status is " + string(w.Status)
	}
	if _, err := mappers.ValidEmail(w.Email); err != nil {
		return DecisionInvalid, err.Error()
	}
	e := domain.NormalizeEmail(w.Email)
	if seen.emails[e] {
		return DecisionDuplicate, "email shared with an earlier worker"
	}
	seen.emails[e] = true
	return "", ""
}
