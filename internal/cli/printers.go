package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/five82/exview/internal/logsapi"
	"github.com/five82/exview/internal/ui"
)

var (
	titleColor  = color.New(color.Bold, color.Underline)
	headerColor = color.New(color.Bold)
	faintColor  = color.New(color.Faint)
	todayColor  = color.New(color.FgGreen, color.Bold)
	lineColor   = color.New(color.FgHiYellow)
)

// printTitle writes a title with a faint entry count, e.g. "srv-1 - 3 dates".
func printTitle(w io.Writer, title string, count int, noun string) {
	_, _ = titleColor.Fprint(w, title)
	if count != 1 {
		noun += "s"
	}
	_, _ = faintColor.Fprintf(w, " - %d %s\n", count, noun)
}

func printNone(w io.Writer) {
	_, _ = color.New(color.Faint, color.Italic).Fprint(w, " none\n\n")
}

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func printInstances(w io.Writer, ids []string) {
	printTitle(w, "Instances", len(ids), "instance")
	if len(ids) == 0 {
		printNone(w)
		return
	}
	tbl := newTable()
	tbl.AddRow(headerColor.Sprint("#"), headerColor.Sprint("INSTANCE"))
	for i, id := range ids {
		tbl.AddRow(strconv.Itoa(i+1), id)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
}

func printDates(w io.Writer, instance string, dates []string, today string) {
	printTitle(w, "["+instance+"] extracted logs", len(dates), "date")
	if len(dates) == 0 {
		_, _ = faintColor.Fprintln(w, "No logs have been extracted yet.")
		return
	}
	tbl := newTable()
	tbl.AddRow(headerColor.Sprint("DATE"), "")
	for _, d := range dates {
		mark := ""
		if d == today {
			mark = todayColor.Sprint("today")
		}
		tbl.AddRow(d, mark)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printExceptions(w io.Writer, instance, date string, exceptions []logsapi.Exception, limit int) {
	printTitle(w, fmt.Sprintf("[%s] %s exceptions", instance, date), len(exceptions), "exception")
	if len(exceptions) == 0 {
		_, _ = faintColor.Fprintln(w, "No exceptions on this date.")
		return
	}
	tbl := newTable()
	tbl.AddRow(headerColor.Sprint("LINE"), headerColor.Sprint("MESSAGE"))
	for _, ex := range exceptions {
		tbl.AddRow(lineColor.Sprint(ex.LineNo), ui.Summary(ex.ExceptionMessage, limit))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
}

func printDetail(w io.Writer, date string, ex logsapi.Exception) {
	_, _ = titleColor.Fprintln(w, "Exception detail")
	_, _ = faintColor.Fprintf(w, "Date: %s / Line: %d\n\n", date, ex.LineNo)
	_, _ = fmt.Fprintln(w, ui.DetailText(ex))
}

func printNotice(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, msg)
}
