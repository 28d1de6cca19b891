package orgchart

import (
	"fmt"
	"io"
	"strings"

	"adp-lms-sync/internal/domain"
)

// Render prints the whole chart, one tree per root. Workers caught in a
// manager cycle have no root and are printed after the roots.
func (h *Hierarchy) Render(w io.Writer) error {
	visited := make(map[int]bool, len(h.workers))
	for _, r := range h.rootIndexes() {
		if err := h.renderNode(w, r, "", "", visited); err != nil {
			return err
		}
	}
	rest := make([]int, 0)
	for i := range h.workers {
		if !visited[i] {
			rest = append(rest, i)
		}
	}
	h.sortByName(rest)
	for _, i := range rest {
		if visited[i] {
			continue
		}
		if err := h.renderNode(w, i, "", "", visited); err != nil {
			return err
		}
	}
	return nil
}

// RenderFrom prints the subtree rooted at the worker ref resolves to.
func (h *Hierarchy) RenderFrom(w io.Writer, ref string) error {
	i, err := h.resolveIndex(ref)
	if err != nil {
		return err
	}
	return h.renderNode(w, i, "", "", map[int]bool{})
}

func (h *Hierarchy) renderNode(w io.Writer, i int, prefix, childPrefix string, visited map[int]bool) error {
	if visited[i] {
		_, err := fmt.Fprintf(w, "%s%s (cycle)\n", prefix, h.workers[i].DisplayName())
		return err
	}
	visited[i] = true

	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, nodeLabel(h.workers[i])); err != nil {
		return err
	}
	kids := h.children[i]
	for n, c := range kids {
		branch, next := "├── ", "│   "
		if n == len(kids)-1 {
			branch, next = "└── ", "    "
		}
		if err := h.renderNode(w, c, childPrefix+branch, childPrefix+next, visited); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(w domain.Worker) string {
	var b strings.Builder
	b.WriteString(w.DisplayName())
	if w.JobTitle != "" {
		b.WriteString(" - ")
		b.WriteString(w.JobTitle)
	}
	if w.Email != "" {
		b.WriteString(" <")
		b.WriteString(w.Email)
		b.WriteString(">")
	}
	if !w.Active() {
		b.WriteString(" [")
		b.WriteString(string(w.Status))
		b.WriteString("]")
	}
	return b.String()
}
