package orgchart

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"adp-lms-sync/internal/domain"
)

type RoleCount struct {
	Title string
	Count int
}

// Stats summarizes a roster. Roles counts active workers only.
type Stats struct {
	Total      int
	Active     int
	Terminated int
	Unknown    int
	Roles      []RoleCount
}

const untitled = "(no job title)"

func ComputeStats(workers []domain.Worker) Stats {
	var s Stats
	roles := map[string]int{}
	for _, w := range workers {
		s.Total++
		switch w.Status {
		case domain.StatusActive:
			s.Active++
			t := strings.TrimSpace(w.JobTitle)
			if t == "" {
				t = untitled
			}
			roles[t]++
		case domain.StatusTerminated:
			s.Terminated++
		default:
			s.Unknown++
		}
	}

	for t, c := range roles {
		s.Roles = append(s.Roles, RoleCount{Title: t, Count: c})
	}
	sort.Slice(s.Roles, func(i, j int) bool {
		if s.Roles[i].Count != s.Roles[j].Count {
			return s.Roles[i].Count > s.Roles[j].Count
		}
		return s.Roles[i].Title < s.Roles[j].Title
	})
	return s
}

func (s Stats) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Total workers:      %d\n", s.Total)
	fmt.Fprintf(&b, "Active workers:     %d\n", s.Active)
	fmt.Fprintf(&b, "Terminated workers: %d\n", s.Terminated)
	if s.Unknown > 0 {
		fmt.Fprintf(&b, "Unknown status:     %d\n", s.Unknown)
	}
	if len(s.Roles) > 0 {
		b.WriteString("\nActive workers by role:\n")
		for _, r := range s.Roles {
			fmt.Fprintf(&b, "  %4d  %s\n", r.Count, r.Title)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
