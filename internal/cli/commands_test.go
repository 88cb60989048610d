package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/five82/exview/internal/clock"
	"github.com/five82/exview/internal/config"
	"github.com/five82/exview/internal/logsapi"
)

func init() {
	color.NoColor = true
}

var testToday = clock.Fixed(time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local))

type fakeService struct {
	dates      []string
	exceptions []logsapi.Exception
	fail       bool
	extracts   atomic.Int32
}

func (f *fakeService) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/logs/instances", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []string{"srv-1", "srv-2"})
	})
	mux.HandleFunc("/logs/extracted-dates/srv-1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, f.dates)
	})
	mux.HandleFunc("/logs/extract", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("extract method = %s, want POST", r.Method)
		}
		f.extracts.Add(1)
		writeJSON(w, logsapi.ExtractResult{Message: "extraction started"})
	})
	mux.HandleFunc("/logs/exceptions-date", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "20240114" {
			t.Errorf("date query = %q, want 20240114", got)
		}
		writeJSON(w, f.exceptions)
	})
	return mux
}

func execute(t *testing.T, svc *fakeService, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvAPIBase, "")

	srv := httptest.NewServer(svc.handler(t))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	base := []string{
		"--api", srv.URL,
		"--config", filepath.Join(dir, "config.toml"),
		"--prefs", filepath.Join(dir, "prefs.toml"),
	}

	cmd := newRoot(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "2024-01-01"}, testToday)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, base...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInstances_PrintsTable(t *testing.T) {
	out, err := execute(t, &fakeService{}, "instances")
	if err != nil {
		t.Fatalf("instances: %v", err)
	}
	for _, want := range []string{"Instances - 2 instances", "srv-1", "srv-2", "INSTANCE"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDates_MarksToday(t *testing.T) {
	svc := &fakeService{dates: []string{"20240114", "20240115"}}
	out, err := execute(t, svc, "dates", "srv-1")
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if !strings.Contains(out, "[srv-1] extracted logs - 2 dates") {
		t.Fatalf("missing title:\n%s", out)
	}
	var todayLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "20240115") {
			todayLine = line
		}
		if strings.Contains(line, "20240114") && strings.Contains(line, "today") {
			t.Fatalf("yesterday marked as today: %q", line)
		}
	}
	if !strings.Contains(todayLine, "today") {
		t.Fatalf("today line = %q, want today marker", todayLine)
	}
}

func TestDates_Empty(t *testing.T) {
	out, err := execute(t, &fakeService{}, "dates", "srv-1")
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if !strings.Contains(out, "No logs have been extracted yet.") {
		t.Fatalf("missing empty state:\n%s", out)
	}
}

func TestExceptions_TruncatesLikeTheList(t *testing.T) {
	long := strings.Repeat("a", 100)
	svc := &fakeService{exceptions: []logsapi.Exception{
		{LineNo: 42, ExceptionMessage: long + "\nsecond line"},
	}}

	out, err := execute(t, svc, "exceptions", "srv-1", "20240114")
	if err != nil {
		t.Fatalf("exceptions: %v", err)
	}
	if !strings.Contains(out, strings.Repeat("a", 80)+"...") {
		t.Fatalf("message not truncated at 80:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("a", 81)) || strings.Contains(out, "second line") {
		t.Fatalf("message not cut:\n%s", out)
	}

	out, err = execute(t, svc, "exceptions", "srv-1", "20240114", "--truncate", "5")
	if err != nil {
		t.Fatalf("exceptions --truncate: %v", err)
	}
	if !strings.Contains(out, "aaaaa...") || strings.Contains(out, "aaaaaa") {
		t.Fatalf("message not truncated at 5:\n%s", out)
	}
}

func TestExceptions_ShortFirstLineStillMarksCut(t *testing.T) {
	msg := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 69)
	svc := &fakeService{exceptions: []logsapi.Exception{{LineNo: 3, ExceptionMessage: msg}}}

	out, err := execute(t, svc, "exceptions", "srv-1", "20240114")
	if err != nil {
		t.Fatalf("exceptions: %v", err)
	}
	want := strings.Repeat("a", 50) + " " + strings.Repeat("b", 29) + "..."
	if !strings.Contains(out, want) {
		t.Fatalf("output missing %q:\n%s", want, out)
	}
}

func TestExceptions_LinePrintsDetail(t *testing.T) {
	svc := &fakeService{exceptions: []logsapi.Exception{
		{LineNo: 7, ExceptionMessage: "first"},
		{LineNo: 42, ExceptionMessage: "boom", StackTrace: "at Foo.bar"},
	}}

	out, err := execute(t, svc, "exceptions", "srv-1", "20240114", "--line", "42")
	if err != nil {
		t.Fatalf("exceptions --line: %v", err)
	}
	for _, want := range []string{"Date: 20240114 / Line: 42", "Exception Message: boom", "at Foo.bar", "(none)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "first") {
		t.Fatalf("printed the wrong exception:\n%s", out)
	}

	if _, err := execute(t, svc, "exceptions", "srv-1", "20240114", "--line", "99"); err == nil {
		t.Fatal("expected error for a line with no exception")
	}
}

func TestExceptions_RejectsBadDate(t *testing.T) {
	_, err := execute(t, &fakeService{}, "exceptions", "srv-1", "2024-01-14")
	if err == nil || !strings.Contains(err.Error(), "want YYYYMMDD") {
		t.Fatalf("err = %v, want invalid date error", err)
	}
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name         string
		dates        []string
		force        bool
		wantOut      string
		wantExtracts int32
	}{
		{name: "missing today", dates: []string{"20240114"}, wantOut: "extraction started", wantExtracts: 1},
		{name: "already extracted", dates: []string{"20240115"}, wantOut: "Today's log (20240115) has already been extracted.", wantExtracts: 0},
		{name: "forced", dates: []string{"20240115"}, force: true, wantOut: "extraction started", wantExtracts: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{dates: tc.dates}
			args := []string{"extract", "srv-1"}
			if tc.force {
				args = append(args, "--force")
			}
			out, err := execute(t, svc, args...)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if !strings.Contains(out, tc.wantOut) {
				t.Fatalf("output = %q, want %q", out, tc.wantOut)
			}
			if got := svc.extracts.Load(); got != tc.wantExtracts {
				t.Fatalf("extract calls = %d, want %d", got, tc.wantExtracts)
			}
		})
	}
}

func TestGatewayFailureIsWrapped(t *testing.T) {
	_, err := execute(t, &fakeService{fail: true}, "instances")
	if err == nil {
		t.Fatal("expected error from failing service")
	}
	if !strings.HasPrefix(err.Error(), "list instances: ") {
		t.Fatalf("err = %v, want list instances prefix", err)
	}
	var statusErr *logsapi.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v, want wrapped StatusError 500", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, &fakeService{}, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Fatalf("version output = %q, want 1.2.3", out)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	if _, err := execute(t, &fakeService{}, "bogus"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
