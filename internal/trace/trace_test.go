package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeModule) {
		t.Fatal("phase level must stop at pass scope")
	}
	if !LevelDetail.ShouldEmit(ScopeModule) || LevelDetail.ShouldEmit(ScopeItem) {
		t.Fatal("detail level must stop at module scope")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatal("off emits nothing")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "compile", 0)
	pass := Begin(tr, ScopePass, "parse", root.ID())
	mod := Begin(tr, ScopeModule, "module:root", pass.ID())
	mod.End("")
	pass.WithExtra("files", "2").End("ok")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if strings.Contains(out, "module:root") {
		t.Fatalf("module span leaked at phase level:\n%s", out)
	}
	if !strings.Contains(lines[2], "← parse (ok)") || !strings.Contains(lines[2], "{files=2}") {
		t.Fatalf("unexpected end line: %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeItem, "lower", "v1", 0)
	if !strings.Contains(buf.String(), `"kind":"point"`) || !strings.Contains(buf.String(), `"scope":"item"`) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopePass, name, "", 0)
	}
	events := r.Snapshot()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	got := events[0].Name + events[1].Name + events[2].Name
	if got != "cde" {
		t.Fatalf("snapshot order = %q, want cde", got)
	}
}

func TestNewSelectsTracer(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level must give Nop: %v", err)
	}
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatal("both mode must include a ring tracer")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must give Nop")
	}
	r := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	span := Begin(FromContext(ctx), ScopeDriver, "compile", 0)
	ctx = WithParent(ctx, span)
	if ParentFrom(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("parent = %d, span = %d", ParentFrom(ctx), span.ID())
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(context.Background(), Nop, time.Millisecond) != nil {
		t.Fatal("disabled tracer must not start a heartbeat")
	}
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(context.Background(), r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
}
