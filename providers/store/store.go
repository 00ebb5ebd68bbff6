package store

import (
	"context"
	"sort"

	"github.com/XayHanmonty/id-verification-poc/core/record"
)

// Results maps an image file name to the record extracted from it.
type Results map[string]record.Record

// Names returns the image names in sorted order.
func (r Results) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writer persists the results of one batch run.
type Writer interface {
	Write(ctx context.Context, results Results) error
}

// Multi writes to each writer in turn and stops at the first error.
func Multi(writers ...Writer) Writer {
	return multiWriter(writers)
}

type multiWriter []Writer

func (m multiWriter) Write(ctx context.Context, results Results) error {
	for _, w := range m {
		if err := w.Write(ctx, results); err != nil {
			return err
		}
	}
	return nil
}
