package console

import (
	"context"

	"github.com/sirupsen/logrus"

	"navident-console/internal/domain/entity"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

// Service is the operation set the list screen needs from an entity service.
// *service.CRUD[T] satisfies it.
type Service[T any] interface {
	GetAll(ctx context.Context, req entity.PageRequest) (*entity.Page[T], error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, id string, record *T) (*T, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]T, error)
}

// List is the table screen for one entity: paginated listing, text search,
// delete with confirmation, and the save handler the form hands its draft to.
// Errors are transient: they surface as a toast and the previously displayed
// rows stay on screen. The screen owns a lifetime context so in-flight calls
// are cancelled, not leaked, when it closes.
type List[T any] struct {
	label  string // "Patient", used in toasts
	plural string // "patients"

	svc      Service[T]
	id       func(*T) string
	notify   Notifier
	confirm  Confirmer
	log      *logrus.Logger
	defaults entity.PageRequest

	ctx    context.Context
	cancel context.CancelFunc

	state         State
	items         []T
	totalElements int64
	totalPages    int
	searchQuery   string
	lastErr       error

	selected *T
	formOpen bool
}

func NewList[T any](parent context.Context, label, plural string, svc Service[T], id func(*T) string,
	notify Notifier, confirm Confirmer, log *logrus.Logger, defaults entity.PageRequest) *List[T] {

	ctx, cancel := context.WithCancel(parent)
	return &List[T]{
		label:    label,
		plural:   plural,
		svc:      svc,
		id:       id,
		notify:   notify,
		confirm:  confirm,
		log:      log,
		defaults: defaults,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateIdle,
	}
}

// Open runs the mount fetch.
func (l *List[T]) Open() {
	l.Load()
}

// Load fetches the current page with the default sort and replaces the rows.
// On failure the previous rows are kept and a toast is shown.
func (l *List[T]) Load() {
	l.state = StateLoading
	l.searchQuery = ""

	page, err := l.svc.GetAll(l.ctx, l.defaults)
	if err != nil {
		l.fail(err, "Failed to fetch "+l.plural)
		return
	}

	l.items = page.Content
	l.totalElements = page.TotalElements
	l.totalPages = page.TotalPages
	l.state = StateLoaded
	l.lastErr = nil
}

// Search replaces the rows with the unpaginated match list. A blank query
// restores the normal paginated listing.
func (l *List[T]) Search(query string) {
	if query == "" {
		l.Load()
		return
	}

	l.state = StateLoading
	results, err := l.svc.Search(l.ctx, query)
	if err != nil {
		l.fail(err, "Search failed")
		return
	}

	l.items = results
	l.totalElements = int64(len(results))
	l.totalPages = 1
	l.searchQuery = query
	l.state = StateLoaded
	l.lastErr = nil
}

// Add opens the form in create mode.
func (l *List[T]) Add() {
	l.selected = nil
	l.formOpen = true
}

// Edit opens the form pre-populated with the given row.
func (l *List[T]) Edit(row T) {
	l.selected = &row
	l.formOpen = true
}

// Cancel closes the form without saving.
func (l *List[T]) Cancel() {
	l.formOpen = false
	l.selected = nil
}

// Save persists a validated draft. Whether this is a create or an update is
// decided here, by whether a row was selected when the form opened. On
// success the form closes and the list is re-fetched; on failure the form
// stays open so the input is not lost.
func (l *List[T]) Save(record *T) bool {
	var err error
	if l.selected != nil {
		_, err = l.svc.Update(l.ctx, l.id(l.selected), record)
	} else {
		_, err = l.svc.Create(l.ctx, record)
	}

	if err != nil {
		l.log.Warnf("Failed to save %s: %+v", l.plural, err)
		l.notify.Error("Failed to save " + l.plural)
		return false
	}

	if l.selected != nil {
		l.notify.Success(l.label + " updated successfully")
	} else {
		l.notify.Success(l.label + " created successfully")
	}

	l.formOpen = false
	l.selected = nil
	l.refetch()
	return true
}

// Delete removes a row after confirmation and unconditionally re-fetches, so
// the table always reflects server state after a mutation.
func (l *List[T]) Delete(row T) {
	if !l.confirm.Confirm("Are you sure you want to delete this " + l.label + "?") {
		return
	}

	if err := l.svc.Delete(l.ctx, l.id(&row)); err != nil {
		l.log.Warnf("Failed to delete %s: %+v", l.plural, err)
		l.notify.Error("Failed to delete " + l.label)
		return
	}

	l.notify.Success(l.label + " deleted successfully")
	l.refetch()
}

// refetch restores the view after a mutation: the active search if one is
// set, otherwise the paginated listing.
func (l *List[T]) refetch() {
	if l.searchQuery != "" {
		l.Search(l.searchQuery)
		return
	}
	l.Load()
}

func (l *List[T]) fail(err error, msg string) {
	l.log.Warnf("%s: %+v", msg, err)
	l.notify.Error(msg)
	l.lastErr = err
	// Transient when the screen still has rows to show; a failure with
	// nothing on screen is the error state.
	if len(l.items) == 0 {
		l.state = StateError
		return
	}
	l.state = StateLoaded
}

// Close cancels any in-flight request tied to this screen.
func (l *List[T]) Close() {
	l.cancel()
}

func (l *List[T]) Items() []T           { return l.items }
func (l *List[T]) State() State         { return l.state }
func (l *List[T]) TotalElements() int64 { return l.totalElements }
func (l *List[T]) TotalPages() int      { return l.totalPages }
func (l *List[T]) FormOpen() bool       { return l.formOpen }
func (l *List[T]) Selected() *T         { return l.selected }
func (l *List[T]) LastError() error     { return l.lastErr }
func (l *List[T]) Context() context.Context { return l.ctx }
