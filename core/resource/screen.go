// Package resource implements the list+form+delete contract every portal
// screen follows: fetch a list, open a form, submit a create or update,
// delete with confirmation, and refetch on success. The server is the sole
// source of truth; after any mutation the list is reloaded in full rather
// than patched locally, so displayed aggregates stay consistent.
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	apiclient "github.com/umoja/portal/api"
)

type (
	// Descriptor binds a screen to one REST resource.
	Descriptor struct {
		Name      string // display name, e.g. "students"
		Path      string // e.g. "/students"
		StatsPath string // statistics endpoint, "" when the resource has none

		// Validate runs client-side required-field checks on a record
		// before create/update; nil skips local validation.
		Validate func(record interface{}) error
	}

	// FormState is nil, Creating, or Editing a loaded record.
	FormState struct {
		Editing bool
		ID      string
		Record  json.RawMessage
	}

	// Screen holds the state of one resource screen. Methods are safe for
	// concurrent use; overlapping loads resolve last-write-wins on
	// resolution order, which is the accepted policy since no request
	// cancellation is modelled.
	Screen struct {
		desc Descriptor
		api  *apiclient.Client

		mu         sync.Mutex
		items      []json.RawMessage
		filters    apiclient.Params
		pagination apiclient.Pagination
		form       *FormState
		loading    bool
		loadErr    error
	}
)

// ErrNotConfirmed is returned by Remove when the caller has not confirmed
// the deletion; no network call is made.
var ErrNotConfirmed = errors.New("deletion not confirmed")

func NewScreen(api *apiclient.Client, desc Descriptor) *Screen {
	return &Screen{desc: desc, api: api}
}

func (s *Screen) Name() string { return s.desc.Name }

// Load fetches the list with the given filters. Empty filter values are
// dropped from the query string. On success items and pagination are
// replaced and any previous load error cleared.
func (s *Screen) Load(ctx context.Context, filters apiclient.Params) error {
	s.mu.Lock()
	s.loading = true
	s.filters = filters.Clone()
	s.mu.Unlock()

	env, err := s.api.Get(ctx, s.desc.Path, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = err
		return err
	}

	var items []json.RawMessage
	if err := env.Decode(&items); err != nil {
		s.loadErr = err
		return err
	}
	s.items = items
	s.loadErr = nil
	if env.Pagination != nil {
		s.pagination = *env.Pagination
	} else {
		// bare-array resources are a single page
		s.pagination = apiclient.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: len(items)}
	}
	return nil
}

// Reload re-runs Load with the current filters.
func (s *Screen) Reload(ctx context.Context) error {
	s.mu.Lock()
	filters := s.filters.Clone()
	s.mu.Unlock()
	return s.Load(ctx, filters)
}

// OpenCreate opens an empty form.
func (s *Screen) OpenCreate() {
	s.mu.Lock()
	s.form = &FormState{}
	s.mu.Unlock()
}

// OpenEdit opens the form over a loaded record.
func (s *Screen) OpenEdit(id string, record json.RawMessage) {
	s.mu.Lock()
	s.form = &FormState{Editing: true, ID: id, Record: record}
	s.mu.Unlock()
}

// CloseForm discards the open form.
func (s *Screen) CloseForm() {
	s.mu.Lock()
	s.form = nil
	s.mu.Unlock()
}

// Create validates the record locally, posts it and, on success, closes the
// form and reloads the list with the filters active at submit time. On a
// validation or business error the form stays open.
func (s *Screen) Create(ctx context.Context, record interface{}) error {
	return s.submit(ctx, s.desc.Path, false, record)
}

// Update is Create's counterpart for an existing record.
func (s *Screen) Update(ctx context.Context, id string, record interface{}) error {
	return s.submit(ctx, s.desc.Path+"/"+id, true, record)
}

func (s *Screen) submit(ctx context.Context, path string, update bool, record interface{}) error {
	if s.desc.Validate != nil {
		if err := s.desc.Validate(record); err != nil {
			return err
		}
	}

	// snapshot filters before the call: the post-mutation reload must use
	// the filters active at submit time
	s.mu.Lock()
	filters := s.filters.Clone()
	s.mu.Unlock()

	var (
		env *apiclient.Envelope
		err error
	)
	if update {
		env, err = s.api.Put(ctx, path, record)
	} else {
		env, err = s.api.Post(ctx, path, record)
	}
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		return err
	}

	s.CloseForm()
	return s.Load(ctx, filters)
}

// Remove deletes a record after explicit confirmation, then reloads.
func (s *Screen) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	env, err := s.api.Delete(ctx, s.desc.Path+"/"+id)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Stats fetches full-dataset aggregates from the resource's statistics
// endpoint. Screens never sum the paginated items for dataset-wide totals.
func (s *Screen) Stats(ctx context.Context, filters apiclient.Params, v interface{}) error {
	if s.desc.StatsPath == "" {
		return errors.Errorf("%s has no statistics endpoint", s.desc.Name)
	}
	env, err := s.api.Get(ctx, s.desc.StatsPath, filters)
	if err != nil {
		return err
	}
	return env.Decode(v)
}

// Items returns the currently displayed page.
func (s *Screen) Items() []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]json.RawMessage, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Screen) Pagination() apiclient.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *Screen) Form() *FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return nil
	}
	form := *s.form
	return &form
}

func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last load failure, nil after a successful load.
func (s *Screen) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// StatusLine renders distinct messaging for "no results for the current
// filters" vs "load failed"; collapsing the two would hide real failures
// behind an innocent-looking empty table.
func (s *Screen) StatusLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return "loading..."
	}
	if s.loadErr != nil {
		return fmt.Sprintf("failed to load %s: %v", s.desc.Name, s.loadErr)
	}
	if len(s.items) == 0 {
		return fmt.Sprintf("no %s match the current filters", s.desc.Name)
	}
	return fmt.Sprintf("%d %s", len(s.items), s.desc.Name)
}
