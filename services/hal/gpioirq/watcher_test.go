// services/hal/gpioirq/watcher_test.go

package gpioirq

import (
	"errors"
	"sync"
	"testing"

	"joytracker/errcode"
	"joytracker/services/hal/halcore"
	"joytracker/types"
)

// fakeIRQPin implements halcore.IRQPin with minimal behaviour for tests.
type fakeIRQPin struct {
	mu      sync.Mutex
	level   bool
	pull    halcore.Pull
	handler func(halcore.Edge)
	number  int
}

func (p *fakeIRQPin) ConfigureInput(pull halcore.Pull) error { p.pull = pull; return nil }
func (p *fakeIRQPin) Get() bool                              { p.mu.Lock(); defer p.mu.Unlock(); return p.level }
func (p *fakeIRQPin) Number() int                            { return p.number }
func (p *fakeIRQPin) SetIRQ(_ halcore.Edge, h func(halcore.Edge)) error {
	p.handler = h
	return nil
}
func (p *fakeIRQPin) ClearIRQ() error { p.handler = nil; return nil }
func (p *fakeIRQPin) fire(e halcore.Edge) {
	if p.handler != nil {
		p.handler(e)
	}
}

type edgeRec struct {
	id   types.ButtonID
	edge halcore.Edge
}

type recSink struct{ got []edgeRec }

func (s *recSink) HandleEdge(id types.ButtonID, e halcore.Edge) {
	s.got = append(s.got, edgeRec{id, e})
}

func TestWatcherForwardsEdges(t *testing.T) {
	sink := &recSink{}
	w := New(sink)

	pin := &fakeIRQPin{number: 5}
	cancel, err := w.RegisterButton(types.ButtonMode, pin, halcore.PullUp, halcore.EdgeFalling)
	if err != nil {
		t.Fatalf("RegisterButton: %v", err)
	}
	if pin.pull != halcore.PullUp {
		t.Fatalf("pull not applied: %v", pin.pull)
	}
	if e, ok := w.Registered(types.ButtonMode); !ok || e != halcore.EdgeFalling {
		t.Fatalf("Registered = %v, %v", e, ok)
	}

	pin.fire(halcore.EdgeFalling)
	pin.fire(halcore.EdgeFalling)
	if len(sink.got) != 2 || sink.got[0] != (edgeRec{types.ButtonMode, halcore.EdgeFalling}) {
		t.Fatalf("unexpected sink log: %+v", sink.got)
	}
	if w.ISRCalls() != 2 {
		t.Fatalf("ISRCalls = %d", w.ISRCalls())
	}

	cancel()
	pin.fire(halcore.EdgeFalling)
	if len(sink.got) != 2 {
		t.Fatal("edge delivered after cancel")
	}
	if _, ok := w.Registered(types.ButtonMode); ok {
		t.Fatal("still registered after cancel")
	}
}

func TestWatcherRejects(t *testing.T) {
	w := New(&recSink{})

	if _, err := w.RegisterButton(types.ButtonUnknown, &fakeIRQPin{}, halcore.PullUp, halcore.EdgeFalling); !errors.Is(err, errcode.UnknownButton) {
		t.Fatalf("unknown button: %v", err)
	}
	if _, err := w.RegisterButton(types.ButtonJoystick, &fakeIRQPin{number: 22}, halcore.PullUp, halcore.EdgeFalling); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := w.RegisterButton(types.ButtonJoystick, &fakeIRQPin{number: 22}, halcore.PullUp, halcore.EdgeFalling); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("duplicate register: %v", err)
	}
}
