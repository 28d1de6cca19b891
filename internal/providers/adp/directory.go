package adp

import (
	"context"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/orgchart"
)

type WorkerLister interface {
	ListWorkers(ctx context.Context) ([]domain.Worker, error)
}

// Directory answers roster questions from a single fetch of the worker
// list, made on first use.
type Directory struct {
	src  WorkerLister
	hier *orgchart.Hierarchy
}

func NewDirectory(src WorkerLister) *Directory {
	return &Directory{src: src}
}

func (d *Directory) Hierarchy(ctx context.Context) (*orgchart.Hierarchy, error) {
	if d.hier != nil {
		return d.hier, nil
	}
	workers, err := d.src.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}
	d.hier = orgchart.Build(workers)
	return d.hier, nil
}

// Roster returns every worker, terminated ones included.
func (d *Directory) Roster(ctx context.Context) ([]domain.Worker, error) {
	h, err := d.Hierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return h.Workers(), nil
}

func (d *Directory) ListActiveWorkers(ctx context.Context) ([]domain.Worker, error) {
	all, err := d.Roster(ctx)
	if err != nil {
		return nil, err
	}
	return orgchart.FilterActive(all), nil
}

func (d *Directory) ListWorkersUnderManager(ctx context.Context, ref string) ([]domain.Worker, error) {
	h, err := d.Hierarchy(ctx)
	if err != nil {
		return nil, err
	}
	out, err := h.ActiveReportsUnder(ref)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeNotFound, "adp: manager "+ref, err)
	}
	return out, nil
}

func (d *Directory) FindWorker(ctx context.Context, ident string) (domain.Worker, error) {
	h, err := d.Hierarchy(ctx)
	if err != nil {
		return domain.Worker{}, err
	}
	w, err := h.Resolve(ident)
	if err != nil {
		return domain.Worker{}, apperr.Wrap(apperr.CodeNotFound, "adp: find worker", err)
	}
	return w, nil
}
