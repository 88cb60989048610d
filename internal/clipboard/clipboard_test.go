package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeSystem struct {
	unsupported bool
	err         error
	got         []string
}

func newTestWriter(mode Mode, fake *fakeSystem, env map[string]string, opts ...Option) (*System, *bytes.Buffer) {
	var term bytes.Buffer
	s := NewSystem(mode, append([]Option{WithTerminal(&term)}, opts...)...)
	s.getenv = func(k string) string { return env[k] }
	s.writeAll = func(text string) error {
		fake.got = append(fake.got, text)
		return fake.err
	}
	s.unsupported = func() bool { return fake.unsupported }
	return s, &term
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{" System ", ModeSystem, false},
		{"OSC52", ModeOSC52, false},
		{"x11", ModeAuto, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("ParseMode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestWrite_AutoUsesSystemClipboard(t *testing.T) {
	fake := &fakeSystem{}
	w, term := newTestWriter(ModeAuto, fake, nil)
	if err := w.Write(Content{Text: "plain", HTML: "<p>plain</p>"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if len(fake.got) != 1 || fake.got[0] != "plain" {
		t.Fatalf("system clipboard got %v, want [plain]", fake.got)
	}
	if term.Len() != 0 {
		t.Fatalf("terminal got %q, want nothing", term.String())
	}
}

func TestWrite_AutoFallsBackToOSC52(t *testing.T) {
	fake := &fakeSystem{unsupported: true}
	w, term := newTestWriter(ModeAuto, fake, nil)
	if err := w.Write(Content{Text: "plain"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if len(fake.got) != 0 {
		t.Fatalf("system clipboard called with %v", fake.got)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("plain"))
	if out := term.String(); !strings.Contains(out, "]52;") || !strings.Contains(out, encoded) {
		t.Fatalf("terminal got %q, want OSC 52 with %q", out, encoded)
	}
}

func TestWrite_OSC52TmuxPassthrough(t *testing.T) {
	fake := &fakeSystem{}
	w, term := newTestWriter(ModeOSC52, fake, map[string]string{"TMUX": "/tmp/tmux-0/default,1,0"})
	if err := w.Write(Content{Text: "plain"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !strings.Contains(term.String(), "tmux;") {
		t.Fatalf("terminal got %q, want tmux passthrough", term.String())
	}
	if len(fake.got) != 0 {
		t.Fatalf("osc52 mode touched the system clipboard")
	}
}

func TestWrite_SystemModeUnavailable(t *testing.T) {
	fake := &fakeSystem{unsupported: true}
	w, term := newTestWriter(ModeSystem, fake, nil)
	err := w.Write(Content{Text: "plain"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if term.Len() != 0 {
		t.Fatalf("system mode fell back to the terminal")
	}
}

func TestWrite_SystemError(t *testing.T) {
	want := errors.New("xclip failed")
	fake := &fakeSystem{err: want}
	w, _ := newTestWriter(ModeSystem, fake, nil)
	if err := w.Write(Content{Text: "plain"}); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestWrite_HTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "copy.html")
	fake := &fakeSystem{}
	w, _ := newTestWriter(ModeAuto, fake, nil, WithHTMLPath(path))
	if err := w.Write(Content{Text: "plain", HTML: "<pre>plain</pre>"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read html copy: %v", err)
	}
	if string(data) != "<pre>plain</pre>" {
		t.Fatalf("html copy = %q", data)
	}
	if len(fake.got) != 1 {
		t.Fatalf("plain text not written after html")
	}
}

func TestWrite_HTMLFailureSkipsText(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	fake := &fakeSystem{}
	w, _ := newTestWriter(ModeAuto, fake, nil, WithHTMLPath(filepath.Join(blocker, "copy.html")))
	if err := w.Write(Content{Text: "plain", HTML: "x"}); err == nil {
		t.Fatalf("Write returned nil error for an unwritable html path")
	}
	if len(fake.got) != 0 {
		t.Fatalf("plain text written despite html failure")
	}
}
