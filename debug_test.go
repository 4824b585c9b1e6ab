package tod

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_LogsUpdateAndDraw(t *testing.T) {
	var log []string
	s := NewStage(&recordingSurface{})
	s.Add(newProbe("p", &log, Vec2{}))
	s.Scheduler().Sleep(5, nil)
	s.SetDebugMode(true)

	output := captureStderr(t, func() {
		s.Update(0.5)
		s.Draw()
	})

	for _, want := range []string{"[tod] advance:", "entities: 1", "pending tasks: 1", "sort:"} {
		if !strings.Contains(output, want) {
			t.Errorf("stderr missing %q, got: %q", want, output)
		}
	}
}

func TestReleaseMode_Silent(t *testing.T) {
	var log []string
	s := NewStage(&recordingSurface{})
	s.Add(newProbe("p", &log, Vec2{}))

	output := captureStderr(t, func() {
		s.Update(0.5)
		s.Draw()
	})
	if output != "" {
		t.Errorf("release mode wrote to stderr: %q", output)
	}
}
