package logsapi

import (
	"encoding/json"
	"testing"
)

func TestException_DecodesServicePayload(t *testing.T) {
	raw := `{"id":7,"instanceId":"srv-1","lineNo":42,"preLines":"","exceptionMessage":"NullPointerException at Foo","stackTrace":"\tat Foo.bar(Foo.java:10)"}`

	var ex Exception
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if ex.ID != 7 || ex.InstanceID != "srv-1" || ex.LineNo != 42 {
		t.Fatalf("decoded = %#v, want id=7 instance=srv-1 line=42", ex)
	}
	if ex.HasPreLines() {
		t.Fatalf("HasPreLines = true, want false for empty preLines")
	}
	if !ex.HasStackTrace() {
		t.Fatalf("HasStackTrace = false, want true")
	}
}

func TestException_WhitespaceCountsAsCaptured(t *testing.T) {
	cases := []struct {
		name      string
		ex        Exception
		wantPre   bool
		wantTrace bool
	}{
		{name: "empty", ex: Exception{}},
		{name: "blank lines", ex: Exception{PreLines: "\n\n", StackTrace: " "}, wantPre: true, wantTrace: true},
		{name: "text", ex: Exception{PreLines: "x", StackTrace: "at y"}, wantPre: true, wantTrace: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ex.HasPreLines(); got != tc.wantPre {
				t.Fatalf("HasPreLines = %v, want %v", got, tc.wantPre)
			}
			if got := tc.ex.HasStackTrace(); got != tc.wantTrace {
				t.Fatalf("HasStackTrace = %v, want %v", got, tc.wantTrace)
			}
		})
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Path: "/logs/instances", Code: 503}
	if got := err.Error(); got != "api /logs/instances returned status 503" {
		t.Fatalf("Error() = %q", got)
	}
}
