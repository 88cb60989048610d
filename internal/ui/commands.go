package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/exview/internal/clock"
	"github.com/five82/exview/internal/logsapi"
	"github.com/five82/exview/internal/state"
)

// Messages

type instancesMsg struct {
	ids []string
	err error
}

type datesMsg struct {
	instance string
	dates    []string
	err      error
}

type extractMsg struct {
	instance string
	result   logsapi.ExtractResult
	err      error
}

type exceptionsMsg struct {
	instance string
	date     string
	list     []logsapi.Exception
	err      error
}

type copyTimerMsg struct {
	gen  uint64
	next state.Phase
}

type fadeFrameMsg struct {
	gen uint64
}

type clearNoticeMsg struct {
	gen int
}

type dayTickMsg time.Time

// Commands

func fetchInstancesCmd(ctx context.Context, api logsapi.API) tea.Cmd {
	return func() tea.Msg {
		ids, err := api.ListInstances(ctx)
		return instancesMsg{ids: ids, err: err}
	}
}

func fetchDatesCmd(ctx context.Context, api logsapi.API, instance string) tea.Cmd {
	return func() tea.Msg {
		dates, err := api.ListExtractedDates(ctx, instance)
		return datesMsg{instance: instance, dates: dates, err: err}
	}
}

func extractCmd(ctx context.Context, api logsapi.API, instance string) tea.Cmd {
	return func() tea.Msg {
		res, err := api.RequestExtraction(ctx, instance)
		return extractMsg{instance: instance, result: res, err: err}
	}
}

func fetchExceptionsCmd(ctx context.Context, api logsapi.API, instance, date string) tea.Cmd {
	return func() tea.Msg {
		list, err := api.ListExceptions(ctx, instance, date)
		return exceptionsMsg{instance: instance, date: date, list: list, err: err}
	}
}

// copyTimerCmd waits for a copy phase change. It returns no message when
// the timer is cancelled first.
func copyTimerCmd(t state.CopyTimer) tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(t.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			return copyTimerMsg{gen: t.Gen, next: t.Next}
		case <-t.Done:
			return nil
		}
	}
}

func fadeFrameCmd(gen uint64) tea.Cmd {
	return tea.Tick(FadeFrame, func(time.Time) tea.Msg {
		return fadeFrameMsg{gen: gen}
	})
}

func clearNoticeCmd(gen int) tea.Cmd {
	return tea.Tick(NoticeTimeout, func(time.Time) tea.Msg {
		return clearNoticeMsg{gen: gen}
	})
}

// dayTickCmd fires just after the next local midnight so the today key
// follows the calendar.
func dayTickCmd(c clock.Clock) tea.Cmd {
	return tea.Tick(clock.UntilNextDay(c)+time.Second, func(t time.Time) tea.Msg {
		return dayTickMsg(t)
	})
}
