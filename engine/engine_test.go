package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	jserrors "github.com/wippyai/js-runtime/errors"
)

func waitDone(t *testing.T, e *Engine) {
	t.Helper()
	select {
	case <-e.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop in time")
	}
}

func TestNaturalExitWithoutReferences(t *testing.T) {
	eng, err := Start(context.Background(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	// No primitive was ever created; the loop has nothing keeping it
	// alive and exits on its own.
	waitDone(t, eng)
}

func TestSetupRunsOnEngineAndSeesRuntime(t *testing.T) {
	var ran bool
	eng, err := Start(context.Background(), func(access *Access) error {
		ran = true
		if access.Runtime() == nil {
			t.Error("setup received nil runtime")
		}
		if access.Engine() == nil {
			t.Error("setup received nil engine")
		}
		v, err := access.Runtime().RunString("2 + 2")
		if err != nil {
			t.Errorf("RunString: %v", err)
		} else if v.ToInteger() != 4 {
			t.Errorf("2 + 2 = %d", v.ToInteger())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !ran {
		t.Fatal("setup did not run")
	}
	waitDone(t, eng)
}

func TestSetupErrorFailsStart(t *testing.T) {
	boom := errors.New("boom")
	eng, err := Start(context.Background(), func(access *Access) error {
		return boom
	})
	if eng != nil {
		t.Fatal("expected nil engine on setup failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("error should wrap the setup error, got %v", err)
	}
	target := &jserrors.Error{Phase: jserrors.PhaseEngine, Kind: jserrors.KindStartup}
	if !errors.Is(err, target) {
		t.Fatalf("expected engine/startup error, got %v", err)
	}
}

func TestEngineIDsIncrease(t *testing.T) {
	a, err := Start(context.Background(), nil, WithName("a"))
	if err != nil {
		t.Fatalf("Start a: %v", err)
	}
	b, err := Start(context.Background(), nil, WithName("b"))
	if err != nil {
		t.Fatalf("Start b: %v", err)
	}
	if b.ID() <= a.ID() {
		t.Fatalf("ids not increasing: %d then %d", a.ID(), b.ID())
	}
	if a.Name() != "a" || b.Name() != "b" {
		t.Fatalf("names not applied: %q, %q", a.Name(), b.Name())
	}
	waitDone(t, a)
	waitDone(t, b)
}

func TestPrimitiveDeliveryOrder(t *testing.T) {
	var prim *Primitive
	var got []int

	eng, err := Start(context.Background(), func(access *Access) error {
		prim = NewPrimitive(access, func(access *Access, data any) {
			if access == nil {
				return
			}
			if data == "stop" {
				// Let the loop wind down once everything before this
				// call has been delivered.
				prim.Unreference(access)
				return
			}
			got = append(got, data.(int))
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 100; i++ {
		if err := prim.Call(i); err != nil {
			t.Fatalf("Call(%d): %v", i, err)
		}
	}
	if err := prim.Call("stop"); err != nil {
		t.Fatalf("Call(stop): %v", err)
	}
	waitDone(t, eng)

	if len(got) != 100 {
		t.Fatalf("delivered %d callbacks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: got %d", i, v)
		}
	}
}

func TestShutdownSentinelForQueuedCalls(t *testing.T) {
	var prim *Primitive
	block := make(chan struct{})
	started := make(chan struct{})
	var sentinels int

	eng, err := Start(context.Background(), func(access *Access) error {
		prim = NewPrimitive(access, func(access *Access, data any) {
			switch data {
			case "block":
				close(started)
				<-block
			default:
				if access == nil {
					sentinels++
				}
			}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Occupy the loop, then queue two calls it will never reach.
	if err := prim.Call("block"); err != nil {
		t.Fatalf("Call(block): %v", err)
	}
	<-started
	if err := prim.Call("queued-1"); err != nil {
		t.Fatalf("Call(queued-1): %v", err)
	}
	if err := prim.Call("queued-2"); err != nil {
		t.Fatalf("Call(queued-2): %v", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = eng.Close(ctx)
	}()
	// Unblock only once teardown has been requested, so the loop cannot
	// sneak the queued calls through first.
	for !eng.stop.Load() {
		time.Sleep(time.Millisecond)
	}
	close(block)
	waitDone(t, eng)

	if sentinels != 2 {
		t.Fatalf("sentinel deliveries = %d, want 2", sentinels)
	}

	// New calls after teardown are rejected outright.
	err = prim.Call("late")
	if err == nil {
		t.Fatal("Call after shutdown should fail")
	}
	target := &jserrors.Error{Phase: jserrors.PhaseEngine, Kind: jserrors.KindShutdown}
	if !errors.Is(err, target) {
		t.Fatalf("expected engine/shutdown error, got %v", err)
	}
}

func TestReferenceUnreferenceIdempotent(t *testing.T) {
	eng, err := Start(context.Background(), func(access *Access) error {
		p := NewPrimitive(access, func(*Access, any) {})
		if access.KeepAlive() != 1 {
			t.Errorf("keep-alive after NewPrimitive = %d, want 1", access.KeepAlive())
		}
		p.Reference(access)
		p.Reference(access)
		if access.KeepAlive() != 1 {
			t.Errorf("keep-alive after repeated Reference = %d, want 1", access.KeepAlive())
		}
		p.Unreference(access)
		p.Unreference(access)
		if access.KeepAlive() != 0 {
			t.Errorf("keep-alive after repeated Unreference = %d, want 0", access.KeepAlive())
		}
		if p.Referenced() {
			t.Error("primitive still reports referenced")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, eng)
}

func TestRunningFlagLifecycle(t *testing.T) {
	eng, err := Start(context.Background(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !Running() {
		t.Fatal("Running() should be true after Start")
	}
	waitDone(t, eng)
	if Running() {
		t.Fatal("Running() should be false after teardown")
	}
}

func TestContextCancelStopsEngine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	eng, err := Start(ctx, func(access *Access) error {
		// Keep the loop alive so only cancellation can end it.
		NewPrimitive(access, func(*Access, any) {})
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	waitDone(t, eng)
}

func TestCloseIdempotent(t *testing.T) {
	eng, err := Start(context.Background(), func(access *Access) error {
		NewPrimitive(access, func(*Access, any) {})
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	ctx := context.Background()
	if err := eng.Close(ctx); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := eng.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestTrampolinePanicDoesNotKillLoop(t *testing.T) {
	var prim *Primitive
	var survived bool

	eng, err := Start(context.Background(), func(access *Access) error {
		prim = NewPrimitive(access, func(access *Access, data any) {
			if access == nil {
				return
			}
			if data == "panic" {
				panic("trampoline boom")
			}
			if data == "after" {
				survived = true
				prim.Unreference(access)
			}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := prim.Call("panic"); err != nil {
		t.Fatalf("Call(panic): %v", err)
	}
	if err := prim.Call("after"); err != nil {
		t.Fatalf("Call(after): %v", err)
	}
	waitDone(t, eng)

	if !survived {
		t.Fatal("loop did not survive a panicking trampoline")
	}
}
