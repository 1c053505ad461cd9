package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Resolving Roboto...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.ctx.Err() == nil {
		t.Error("Stop() should end the spinner context")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Resolving...")
	s.Start()

	cancel()
	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner should stop after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Resolving Lora...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerQuietWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Resolving...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal writer", buf.String())
	}
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Resolving Roboto...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Active font: Roboto")
}
