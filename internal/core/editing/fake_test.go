package editing_test

import (
	"context"
	"errors"
	"sync"

	"github.com/colonyops/docgrid/internal/core/record"
)

var errNetwork = errors.New("dial tcp: connection refused")

// fakeSyncer is an in-memory Syncer. When gate is set, every call signals
// entered and then waits on gate before returning.
type fakeSyncer struct {
	mu sync.Mutex

	created   record.Record
	createErr error
	updateErr error
	deleteErr error
	fetched   []record.Record
	fetchErr  error

	creates []record.Values
	updates map[string]record.Values
	deletes []string
	fetches int

	gate    chan struct{}
	entered chan string
}

func newFakeSyncer() *fakeSyncer {
	return &fakeSyncer{updates: make(map[string]record.Values)}
}

// blocking makes every subsequent call wait until release is called.
func (f *fakeSyncer) blocking() {
	f.gate = make(chan struct{})
	f.entered = make(chan string, 8)
}

func (f *fakeSyncer) release() { close(f.gate) }

func (f *fakeSyncer) wait(ctx context.Context, call string) error {
	if f.gate == nil {
		return nil
	}
	f.entered <- call
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeSyncer) CreateRecord(ctx context.Context, fields record.Values) (record.Record, error) {
	if err := f.wait(ctx, "create"); err != nil {
		return record.Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, fields.Clone())
	if f.createErr != nil {
		return record.Record{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeSyncer) UpdateRecord(ctx context.Context, id string, fields record.Values) error {
	if err := f.wait(ctx, "update "+id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = fields.Clone()
	return f.updateErr
}

func (f *fakeSyncer) DeleteRecord(ctx context.Context, id string) error {
	if err := f.wait(ctx, "delete "+id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func (f *fakeSyncer) FetchAll(ctx context.Context) ([]record.Record, error) {
	if err := f.wait(ctx, "fetch"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]record.Record(nil), f.fetched...), nil
}

func (f *fakeSyncer) deleteCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}
