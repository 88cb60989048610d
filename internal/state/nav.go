package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/five82/exview/internal/logsapi"
)

// ErrInvalidSelection reports a selection of something the current
// collections do not contain. Normal interaction cannot produce it.
var ErrInvalidSelection = errors.New("invalid selection")

// EffectKind names a side effect requested by a navigation transition.
type EffectKind int

const (
	FetchInstances EffectKind = iota
	FetchDates
	FetchExceptions
	Extract
	ResetCopy
	Notify
)

func (k EffectKind) String() string {
	switch k {
	case FetchInstances:
		return "fetch-instances"
	case FetchDates:
		return "fetch-dates"
	case FetchExceptions:
		return "fetch-exceptions"
	case Extract:
		return "extract"
	case ResetCopy:
		return "reset-copy"
	case Notify:
		return "notify"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Level grades a user-visible notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is a single user-visible message.
type Notice struct {
	Level Level
	Text  string
	Err   error
}

// Effect is a side effect the caller must carry out after a transition.
type Effect struct {
	Kind     EffectKind
	Instance string
	Date     string
	Notice   Notice
}

// Notice texts, one per failing operation.
const (
	MsgInstancesFailed  = "Failed to load the instance list"
	MsgDatesFailed      = "Failed to load extracted dates"
	MsgExtractionFailed = "Log extraction failed"
	MsgExceptionsFailed = "Failed to load exceptions for the date"
	MsgSelectInstance   = "Select an instance first"
)

type exceptionsKey struct {
	instance string
	date     string
	prevDate string
}

// inflight tracks outstanding requests so the view can show progress and
// failures can be rolled back to pre-call values.
type inflight struct {
	instances  bool
	dates      string
	exceptions *exceptionsKey
	extraction string
}

// Nav is the navigation state of one browsing session. Transitions are
// value methods: the receiver is never modified, a new Nav is returned
// together with the effects to run.
type Nav struct {
	Instances         []string
	SelectedInstance  string
	Dates             []string
	SelectedDate      string
	Exceptions        []logsapi.Exception
	SelectedException *logsapi.Exception
	OverlayOpen       bool

	pending inflight
}

// Mount starts a session by requesting the instance list.
func (n Nav) Mount() (Nav, []Effect) {
	n.pending.instances = true
	return n, []Effect{{Kind: FetchInstances}}
}

// InstancesLoaded stores the instance list and selects its first element.
func (n Nav) InstancesLoaded(ids []string) (Nav, []Effect) {
	n.pending.instances = false
	n.Instances = slices.Clone(ids)
	if len(n.Instances) == 0 {
		return n, nil
	}
	next, effects, _ := n.SelectInstance(n.Instances[0])
	return next, effects
}

// InstancesFailed reports a failed instance list fetch.
func (n Nav) InstancesFailed(err error) (Nav, []Effect) {
	n.pending.instances = false
	return n, []Effect{notify(LevelError, MsgInstancesFailed, err)}
}

// SelectInstance switches to another instance and requests its dates.
// The date list is kept until the new one arrives.
func (n Nav) SelectInstance(id string) (Nav, []Effect, error) {
	if !slices.Contains(n.Instances, id) {
		return n, nil, fmt.Errorf("%w: instance %q", ErrInvalidSelection, id)
	}
	var effects []Effect
	if n.OverlayOpen {
		effects = append(effects, Effect{Kind: ResetCopy})
	}
	n.SelectedInstance = id
	n.SelectedDate = ""
	n.Exceptions = nil
	n.SelectedException = nil
	n.OverlayOpen = false
	n.pending.dates = id
	n.pending.exceptions = nil
	effects = append(effects, Effect{Kind: FetchDates, Instance: id})
	return n, effects, nil
}

// DatesLoaded commits a date list if it belongs to the selected instance.
// Responses for any other instance are dropped.
func (n Nav) DatesLoaded(instance string, dates []string) (Nav, []Effect) {
	if instance != n.SelectedInstance {
		return n, nil
	}
	if n.pending.dates == instance {
		n.pending.dates = ""
	}
	n.Dates = slices.Clone(dates)
	return n, nil
}

// DatesFailed reports a failed date fetch for the selected instance.
func (n Nav) DatesFailed(instance string, err error) (Nav, []Effect) {
	if instance != n.SelectedInstance {
		return n, nil
	}
	if n.pending.dates == instance {
		n.pending.dates = ""
	}
	return n, []Effect{notify(LevelError, MsgDatesFailed, err)}
}

// HasTodayLog reports whether today's key is among the extracted dates.
func (n Nav) HasTodayLog(today string) bool {
	return slices.Contains(n.Dates, today)
}

// RequestExtraction asks for today's log of the selected instance.
func (n Nav) RequestExtraction(today string) (Nav, []Effect, error) {
	if n.SelectedInstance == "" {
		return n, []Effect{notify(LevelInfo, MsgSelectInstance, nil)}, nil
	}
	if n.HasTodayLog(today) {
		return n, nil, fmt.Errorf("%w: %s already extracted for %q", ErrInvalidSelection, today, n.SelectedInstance)
	}
	if n.pending.extraction == n.SelectedInstance {
		return n, nil, nil
	}
	n.pending.extraction = n.SelectedInstance
	return n, []Effect{{Kind: Extract, Instance: n.SelectedInstance}}, nil
}

// ExtractionSucceeded relays the service message and refreshes the date
// list so the new entry appears.
func (n Nav) ExtractionSucceeded(instance, message string) (Nav, []Effect) {
	if n.pending.extraction == instance {
		n.pending.extraction = ""
	}
	effects := []Effect{notify(LevelInfo, message, nil), {Kind: FetchDates, Instance: instance}}
	if instance == n.SelectedInstance {
		n.pending.dates = instance
	}
	return n, effects
}

// ExtractionFailed reports a failed extraction; nothing else changes.
func (n Nav) ExtractionFailed(instance string, err error) (Nav, []Effect) {
	if n.pending.extraction == instance {
		n.pending.extraction = ""
	}
	return n, []Effect{notify(LevelError, MsgExtractionFailed, err)}
}

// SelectDate switches to the exception list for date and requests it.
func (n Nav) SelectDate(date string) (Nav, []Effect, error) {
	if !slices.Contains(n.Dates, date) {
		return n, nil, fmt.Errorf("%w: date %q", ErrInvalidSelection, date)
	}
	prev := n.SelectedDate
	if n.pending.exceptions != nil && n.pending.exceptions.instance == n.SelectedInstance {
		prev = n.pending.exceptions.prevDate
	}
	n.SelectedDate = date
	n.pending.exceptions = &exceptionsKey{instance: n.SelectedInstance, date: date, prevDate: prev}
	return n, []Effect{{Kind: FetchExceptions, Instance: n.SelectedInstance, Date: date}}, nil
}

// ExceptionsLoaded commits an exception list if it belongs to the current
// instance and date. Any open detail is closed.
func (n Nav) ExceptionsLoaded(instance, date string, list []logsapi.Exception) (Nav, []Effect) {
	if instance != n.SelectedInstance || date != n.SelectedDate {
		return n, nil
	}
	n.clearPendingExceptions(instance, date)
	var effects []Effect
	if n.OverlayOpen {
		effects = append(effects, Effect{Kind: ResetCopy})
	}
	n.Exceptions = slices.Clone(list)
	n.SelectedException = nil
	n.OverlayOpen = false
	return n, effects
}

// ExceptionsFailed rolls the date selection back and reports the failure.
func (n Nav) ExceptionsFailed(instance, date string, err error) (Nav, []Effect) {
	if instance != n.SelectedInstance || date != n.SelectedDate {
		return n, nil
	}
	if p := n.pending.exceptions; p != nil && p.instance == instance && p.date == date {
		n.SelectedDate = p.prevDate
	}
	n.clearPendingExceptions(instance, date)
	return n, []Effect{notify(LevelError, MsgExceptionsFailed, err)}
}

// BackToDates returns to the cached date list without refetching it.
func (n Nav) BackToDates() (Nav, []Effect) {
	var effects []Effect
	if n.OverlayOpen {
		effects = append(effects, Effect{Kind: ResetCopy})
	}
	n.SelectedDate = ""
	n.Exceptions = nil
	n.SelectedException = nil
	n.OverlayOpen = false
	n.pending.exceptions = nil
	return n, effects
}

// OpenDetail opens the overlay for an exception already in the list.
func (n Nav) OpenDetail(id int64) (Nav, []Effect, error) {
	idx := slices.IndexFunc(n.Exceptions, func(e logsapi.Exception) bool { return e.ID == id })
	if idx < 0 {
		return n, nil, fmt.Errorf("%w: exception %d", ErrInvalidSelection, id)
	}
	selected := n.Exceptions[idx]
	n.SelectedException = &selected
	n.OverlayOpen = true
	return n, []Effect{{Kind: ResetCopy}}, nil
}

// CloseDetail closes the overlay and always resets the copy control.
func (n Nav) CloseDetail() (Nav, []Effect) {
	n.SelectedException = nil
	n.OverlayOpen = false
	return n, []Effect{{Kind: ResetCopy}}
}

// LoadingInstances reports whether the instance list is outstanding.
func (n Nav) LoadingInstances() bool { return n.pending.instances }

// LoadingDates reports whether dates for the selected instance are outstanding.
func (n Nav) LoadingDates() bool {
	return n.pending.dates != "" && n.pending.dates == n.SelectedInstance
}

// LoadingExceptions reports whether exceptions for the selected date are outstanding.
func (n Nav) LoadingExceptions() bool {
	p := n.pending.exceptions
	return p != nil && p.instance == n.SelectedInstance && p.date == n.SelectedDate
}

// Extracting reports whether an extraction for the selected instance is outstanding.
func (n Nav) Extracting() bool {
	return n.pending.extraction != "" && n.pending.extraction == n.SelectedInstance
}

func (n *Nav) clearPendingExceptions(instance, date string) {
	if p := n.pending.exceptions; p != nil && p.instance == instance && p.date == date {
		n.pending.exceptions = nil
	}
}

func notify(level Level, text string, err error) Effect {
	return Effect{Kind: Notify, Notice: Notice{Level: level, Text: text, Err: err}}
}
