// Package state holds the two state machines behind the exview browser.
//
// # Overview
//
// Nav tracks which of the three views is active (date list, exception
// list, detail overlay) and what is selected in each. Copy tracks the
// short feedback cycle after the detail is copied to the clipboard. The
// two are independent: Nav asks for a copy reset through an effect, Copy
// never looks at Nav.
//
// # Navigation
//
// Every Nav transition is a value method that returns the next Nav and a
// list of Effects:
//
//	next, effects, err := nav.SelectDate("20240101")
//	// effects: [{Kind: FetchExceptions, Instance: "srv-1", Date: "20240101"}]
//
// The caller runs the effects (network calls, copy resets, notices) and
// feeds the results back through the matching *Loaded / *Failed
// transition. Those transitions carry the request key and are dropped
// when the key no longer matches the current selection:
//
//	select srv-1 ──► fetch dates(srv-1) ───────────────┐ (slow)
//	select srv-2 ──► fetch dates(srv-2) ──┐            │
//	                                      ▼            ▼
//	                              DatesLoaded(srv-2) DatesLoaded(srv-1)
//	                              committed          dropped
//
// No request is ever aborted for correctness.
//
// Selections of ids or dates that are not in the current collections
// return ErrInvalidSelection and leave the state unchanged.
//
// # Copy feedback
//
//	Idle ──Activate(ok)──► Copied ──fade delay──► Fading ──reset delay──► Idle
//	  ▲                       │                      │
//	  └───────── Reset ───────┴──────────────────────┘
//
// The button is disabled in every phase but Idle, so a second write cannot
// race the first. Both timers are measured from the Copied transition and
// share one cancellable context; Reset cancels it and bumps the generation
// so a timer that already fired is refused by Advance.
//
// # Concurrency
//
// Neither type is safe for concurrent use. Both are owned by the Bubble Tea
// model and only touched inside Update, which processes one message at a
// time.
package state
