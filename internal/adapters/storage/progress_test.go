package storage

import (
	"bytes"
	"io"
	"testing"
)

func drainWithProgress(t *testing.T, size, chunk int) []float64 {
	t.Helper()

	var reported []float64
	pr := newProgressReader(bytes.NewReader(make([]byte, size)), int64(size), func(percent float64) {
		reported = append(reported, percent)
	})

	buf := make([]byte, chunk)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}
	return reported
}

func TestProgressReaderThrottlesToFivePointSteps(t *testing.T) {
	reported := drainWithProgress(t, 1000, 10)

	if len(reported) == 0 {
		t.Fatal("expected progress callbacks")
	}
	prev := reported[0]
	for _, p := range reported[1:] {
		if p <= prev {
			t.Fatalf("progress not strictly increasing: %v", reported)
		}
		if p < 100 && p-prev < progressStep {
			t.Fatalf("step %.1f -> %.1f below minimum advance", prev, p)
		}
		prev = p
	}
}

func TestProgressReaderReportsTerminalHundred(t *testing.T) {
	reported := drainWithProgress(t, 1000, 64)

	if len(reported) == 0 || reported[len(reported)-1] != 100 {
		t.Fatalf("expected terminal 100, got %v", reported)
	}
}

func TestProgressReaderSingleRead(t *testing.T) {
	reported := drainWithProgress(t, 10, 64)

	if len(reported) != 1 || reported[0] != 100 {
		t.Fatalf("expected single terminal callback, got %v", reported)
	}
}

func TestProgressReaderNilCallback(t *testing.T) {
	pr := newProgressReader(bytes.NewReader(make([]byte, 100)), 100, nil)
	if _, err := io.Copy(io.Discard, pr); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
}

func TestProgressReaderUnknownTotal(t *testing.T) {
	called := false
	pr := newProgressReader(bytes.NewReader(make([]byte, 100)), 0, func(float64) {
		called = true
	})
	if _, err := io.Copy(io.Discard, pr); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if called {
		t.Fatal("unknown total should suppress callbacks")
	}
}
