// Package orgchart indexes a worker roster by manager so that reports can
// be collected transitively, names can be resolved and the chart printed.
//
// A Hierarchy is built once per invocation from the full roster, terminated
// workers included: a terminated manager still links their reports to the
// chain above them. A manager reference that matches no worker makes the
// worker a root. Cycles in the data are tolerated; every walk keeps a
// visited set.
package orgchart

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
)

const noParent = -1

type Hierarchy struct {
	workers []domain.Worker

	byKey   map[string]int
	byEmail map[string][]int
	byName  map[string][]int

	parent   []int
	children [][]int

	reportsMemo map[int][]int
}

// Build indexes workers. Duplicate keys keep the first record.
func Build(workers []domain.Worker) *Hierarchy {
	h := &Hierarchy{
		workers:     append([]domain.Worker(nil), workers...),
		byKey:       make(map[string]int, len(workers)*2),
		byEmail:     make(map[string][]int, len(workers)),
		byName:      make(map[string][]int, len(workers)),
		parent:      make([]int, len(workers)),
		children:    make([][]int, len(workers)),
		reportsMemo: map[int][]int{},
	}

	for i, w := range h.workers {
		for _, k := range []string{strings.TrimSpace(w.ID), strings.TrimSpace(w.WorkerID)} {
			if k == "" {
				continue
			}
			if _, dup := h.byKey[k]; !dup {
				h.byKey[k] = i
			}
		}
		if e := domain.NormalizeEmail(w.Email); e != "" {
			h.byEmail[e] = append(h.byEmail[e], i)
		}
		for _, n := range nameVariants(w) {
			h.byName[n] = appendUnique(h.byName[n], i)
		}
	}

	for i, w := range h.workers {
		h.parent[i] = noParent
		m := strings.TrimSpace(w.ManagerID)
		if m == "" {
			continue
		}
		p, ok := h.byKey[m]
		if !ok || p == i {
			continue
		}
		h.parent[i] = p
		h.children[p] = append(h.children[p], i)
	}
	for i := range h.children {
		h.sortByName(h.children[i])
	}
	return h
}

func (h *Hierarchy) Len() int { return len(h.workers) }

func (h *Hierarchy) Workers() []domain.Worker {
	return append([]domain.Worker(nil), h.workers...)
}

// Resolve finds a worker by associate id, worker id, email or name. Names
// compare without regard to case or diacritics. An email or name shared by
// several workers resolves to the one active among them, and is a
// validation error otherwise.
func (h *Hierarchy) Resolve(ref string) (domain.Worker, error) {
	i, err := h.resolveIndex(ref)
	if err != nil {
		return domain.Worker{}, err
	}
	return h.workers[i], nil
}

func (h *Hierarchy) resolveIndex(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return noParent, apperr.New(apperr.CodeValidation, "orgchart: resolve", "empty worker reference")
	}
	if i, ok := h.byKey[ref]; ok {
		return i, nil
	}
	if idx := h.byEmail[domain.NormalizeEmail(ref)]; len(idx) > 0 {
		return h.settle(ref, idx, "use a worker id")
	}
	idx := h.byName[foldName(ref)]
	if len(idx) == 0 {
		return noParent, apperr.Newf(apperr.CodeNotFound, "orgchart: resolve", "no worker matches %q", ref)
	}
	return h.settle(ref, idx, "use an email or worker id")
}

// settle resolves a reference that matched several records. A rehire leaves a
// terminated record next to the active one; the single active match wins.
func (h *Hierarchy) settle(ref string, idx []int, hint string) (int, error) {
	if len(idx) == 1 {
		return idx[0], nil
	}
	activeAt := noParent
	for _, i := range idx {
		if h.workers[i].Active() {
			if activeAt != noParent {
				activeAt = noParent
				break
			}
			activeAt = i
		}
	}
	if activeAt != noParent {
		return activeAt, nil
	}
	names := make([]string, 0, len(idx))
	for _, i := range idx {
		w := h.workers[i]
		names = append(names, fmt.Sprintf("%s <%s> id=%s %s", w.DisplayName(), w.Email, w.Key(), w.Status))
	}
	return noParent, apperr.Newf(apperr.CodeValidation, "orgchart: resolve",
		"%q matches %d workers (%s); %s", ref, len(idx), strings.Join(names, ", "), hint)
}

// Manager returns the worker's manager, if it is in the roster.
func (h *Hierarchy) Manager(w domain.Worker) (domain.Worker, bool) {
	i, ok := h.byKey[w.Key()]
	if !ok || h.parent[i] == noParent {
		return domain.Worker{}, false
	}
	return h.workers[h.parent[i]], true
}

func (h *Hierarchy) DirectReports(ref string) ([]domain.Worker, error) {
	i, err := h.resolveIndex(ref)
	if err != nil {
		return nil, err
	}
	return h.pick(h.children[i]), nil
}

// ReportsUnder returns every worker whose manager chain includes ref,
// direct and indirect, each once. The manager is not included.
func (h *Hierarchy) ReportsUnder(ref string) ([]domain.Worker, error) {
	i, err := h.resolveIndex(ref)
	if err != nil {
		return nil, err
	}
	return h.pick(h.reports(i)), nil
}

// ActiveReportsUnder is ReportsUnder restricted to active workers.
func (h *Hierarchy) ActiveReportsUnder(ref string) ([]domain.Worker, error) {
	all, err := h.ReportsUnder(ref)
	if err != nil {
		return nil, err
	}
	return FilterActive(all), nil
}

func (h *Hierarchy) reports(root int) []int {
	if r, ok := h.reportsMemo[root]; ok {
		return r
	}
	visited := map[int]bool{root: true}
	var out []int
	stack := append([]int(nil), h.children[root]...)
	for len(stack) > 0 {
		n := stack[0]
		stack = stack[1:]
		if visited[n] {
			continue
		}
		visited[n] = true
		out = append(out, n)
		stack = append(stack, h.children[n]...)
	}
	h.reportsMemo[root] = out
	return out
}

// Roots are workers with no manager in the roster, sorted by name.
func (h *Hierarchy) Roots() []domain.Worker {
	return h.pick(h.rootIndexes())
}

func (h *Hierarchy) rootIndexes() []int {
	var out []int
	for i, p := range h.parent {
		if p == noParent {
			out = append(out, i)
		}
	}
	h.sortByName(out)
	return out
}

func (h *Hierarchy) pick(idx []int) []domain.Worker {
	out := make([]domain.Worker, 0, len(idx))
	for _, i := range idx {
		out = append(out, h.workers[i])
	}
	return out
}

func (h *Hierarchy) sortByName(idx []int) {
	sort.SliceStable(idx, func(a, b int) bool {
		return foldName(h.workers[idx[a]].DisplayName()) < foldName(h.workers[idx[b]].DisplayName())
	})
}

func FilterActive(workers []domain.Worker) []domain.Worker {
	out := make([]domain.Worker, 0, len(workers))
	for _, w := range workers {
		if w.Active() {
			out = append(out, w)
		}
	}
	return out
}

func nameVariants(w domain.Worker) []string {
	var out []string
	for _, n := range []string{
		w.FullName,
		w.FirstName + " " + w.LastName,
		w.LastName + ", " + w.FirstName,
	} {
		if f := foldName(n); f != "" && f != "," {
			out = appendUniqueString(out, f)
		}
	}
	return out
}

// foldName is the comparison form of a person name: case folded, accents
// stripped and whitespace collapsed.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func appendUniqueString(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
