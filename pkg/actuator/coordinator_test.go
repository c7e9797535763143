package actuator_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"laptudirm.com/x/mechess/pkg/actuator"
)

var errPortClosed = errors.New("port closed")

// fakeLink is a Link to a simulated controller, which answers every
// frame written to it by calling respond.
type fakeLink struct {
	mu      sync.Mutex
	written []string
	timeout time.Duration

	// overlapping is set if a frame is written while the previous one
	// is still waiting for its acknowledgment.
	inFlight    bool
	overlapping bool

	closed   bool
	writeErr error

	input   chan byte
	respond func(link *fakeLink, frame string)
}

func newFakeLink(respond func(link *fakeLink, frame string)) *fakeLink {
	return &fakeLink{
		timeout: time.Second,
		input:   make(chan byte, 16),
		respond: respond,
	}
}

// ack acknowledges immediately.
func ack(link *fakeLink, frame string) {
	link.input <- 'd'
}

// silent never acknowledges.
func silent(link *fakeLink, frame string) {}

func (link *fakeLink) Write(p []byte) (int, error) {
	link.mu.Lock()
	if link.writeErr != nil {
		link.mu.Unlock()
		return 0, link.writeErr
	}

	if link.inFlight {
		link.overlapping = true
	}
	link.inFlight = true

	link.written = append(link.written, string(p))
	respond := link.respond
	link.mu.Unlock()

	respond(link, string(p))
	return len(p), nil
}

func (link *fakeLink) Read(p []byte) (int, error) {
	link.mu.Lock()
	closed, timeout := link.closed, link.timeout
	link.mu.Unlock()

	if closed {
		return 0, errPortClosed
	}

	select {
	case b := <-link.input:
		link.mu.Lock()
		link.inFlight = false
		link.mu.Unlock()

		p[0] = b
		return 1, nil
	case <-time.After(timeout):
		return 0, nil
	}
}

func (link *fakeLink) SetReadTimeout(timeout time.Duration) error {
	link.mu.Lock()
	defer link.mu.Unlock()

	link.timeout = timeout
	return nil
}

func (link *fakeLink) ResetInputBuffer() error {
	for {
		select {
		case <-link.input:
		default:
			return nil
		}
	}
}

func (link *fakeLink) Close() error {
	link.mu.Lock()
	defer link.mu.Unlock()

	link.closed = true
	return nil
}

func (link *fakeLink) frames() []string {
	link.mu.Lock()
	defer link.mu.Unlock()

	return append([]string(nil), link.written...)
}

func config(timeout time.Duration) actuator.Config {
	config := actuator.DefaultConfig
	config.AckTimeout = timeout
	return config
}

func TestSendMove(t *testing.T) {
	link := newFakeLink(ack)
	coordinator := actuator.New(link, config(time.Second))

	if err := coordinator.SendMove("e2e4"); err != nil {
		t.Fatalf("SendMove: %v", err)
	}

	if err := coordinator.SendReset(); err != nil {
		t.Fatalf("SendReset: %v", err)
	}

	frames := link.frames()
	if len(frames) != 2 || frames[0] != "me2e4" || frames[1] != "mx9x9" {
		t.Fatalf("frames written: %q", frames)
	}
}

func TestTimeout(t *testing.T) {
	const timeout = 50 * time.Millisecond

	link := newFakeLink(silent)
	coordinator := actuator.New(link, config(timeout))

	start := time.Now()
	err := coordinator.SendMove("e2e4")
	if !errors.Is(err, actuator.ErrTimeout) {
		t.Fatalf("SendMove = %v, want a timeout", err)
	}

	if elapsed := time.Since(start); elapsed < timeout {
		t.Fatalf("timed out after %s, before the %s bound", elapsed, timeout)
	}

	var linkErr *actuator.Error
	if !errors.As(err, &linkErr) || linkErr.Command != "me2e4" || linkErr.Waited < timeout {
		t.Fatalf("error details: %+v", linkErr)
	}

	// the coordinator is not latched by the timeout
	link.mu.Lock()
	link.respond = ack
	link.mu.Unlock()

	if err := coordinator.SendMove("e7e5"); err != nil {
		t.Fatalf("SendMove after a timeout: %v", err)
	}
}

func TestLateAckIsNotCredited(t *testing.T) {
	const timeout = 30 * time.Millisecond

	late := make(chan struct{})
	link := newFakeLink(func(link *fakeLink, frame string) {
		go func() {
			time.Sleep(3 * timeout)
			link.input <- 'd'
			close(late)
		}()
	})
	coordinator := actuator.New(link, config(timeout))

	if err := coordinator.SendMove("e2e4"); !errors.Is(err, actuator.ErrTimeout) {
		t.Fatalf("SendMove = %v, want a timeout", err)
	}

	// wait for the stale acknowledgment to arrive, then send a command
	// which the controller never acknowledges
	<-late
	link.mu.Lock()
	link.respond = silent
	link.mu.Unlock()

	if err := coordinator.SendMove("e7e5"); !errors.Is(err, actuator.ErrTimeout) {
		t.Fatalf("SendMove = %v, the late acknowledgment was credited", err)
	}
}

func TestLinkClosed(t *testing.T) {
	link := newFakeLink(ack)
	coordinator := actuator.New(link, config(time.Second))

	if err := coordinator.Close(); err != nil {
		t.Fatal(err)
	}

	err := coordinator.SendMove("e2e4")
	if !errors.Is(err, actuator.ErrLinkClosed) || !errors.Is(err, errPortClosed) {
		t.Fatalf("SendMove on a closed link = %v", err)
	}

	link = newFakeLink(ack)
	link.writeErr = errPortClosed
	coordinator = actuator.New(link, config(time.Second))

	if err := coordinator.SendReset(); !errors.Is(err, actuator.ErrLinkClosed) {
		t.Fatalf("SendReset with a failing write = %v", err)
	}
}

func TestInvalidFrames(t *testing.T) {
	link := newFakeLink(ack)
	coordinator := actuator.New(link, config(time.Second))

	for _, text := range []string{"", "e2", "e2e9", "Nf3", "e2-e4", "e7e8k"} {
		if err := coordinator.SendMove(text); !errors.Is(err, actuator.ErrInvalidFrame) {
			t.Errorf("SendMove(%q) = %v, want an invalid frame", text, err)
		}
	}

	if err := coordinator.SendRaw(""); !errors.Is(err, actuator.ErrInvalidFrame) {
		t.Errorf("SendRaw(\"\") = %v, want an invalid frame", err)
	}

	if frames := link.frames(); len(frames) != 0 {
		t.Fatalf("invalid frames were written: %q", frames)
	}
}

func TestFrames(t *testing.T) {
	tests := []struct {
		frame actuator.Frame
		move  string
		want  string
		home  string
	}{
		{actuator.DefaultFrame, "e2e4", "me2e4", "mx9x9"},
		{actuator.DefaultFrame, "e7e8q", "me7e8", "mx9x9"},
		{actuator.Frame{Prefix: "m", Reset: "x9x9", Promotion: true}, "e7e8q", "me7e8q", "mx9x9"},
		{actuator.Frame{Prefix: "M:", Reset: "00"}, "g1f3", "M:g1f3", "M:00"},
	}

	for _, test := range tests {
		frame, err := test.frame.Move(test.move)
		if err != nil || string(frame) != test.want {
			t.Errorf("Move(%q) = %q, %v, want %q", test.move, frame, err, test.want)
		}

		if home := string(test.frame.Home()); home != test.home {
			t.Errorf("Home() = %q, want %q", home, test.home)
		}
	}
}

func TestSendRaw(t *testing.T) {
	link := newFakeLink(ack)
	coordinator := actuator.New(link, config(time.Second))

	if err := coordinator.SendRaw("mx9x9"); err != nil {
		t.Fatalf("SendRaw: %v", err)
	}

	if frames := link.frames(); len(frames) != 1 || frames[0] != "mx9x9" {
		t.Fatalf("frames written: %q", frames)
	}
}

func TestCommandsDoNotOverlap(t *testing.T) {
	link := newFakeLink(func(link *fakeLink, frame string) {
		go func() {
			time.Sleep(5 * time.Millisecond)
			link.input <- 'd'
		}()
	})
	coordinator := actuator.New(link, config(time.Second))

	var wg sync.WaitGroup
	for _, mov := range []string{"e2e4", "d2d4", "c2c4", "g1f3"} {
		wg.Add(1)
		go func(mov string) {
			defer wg.Done()
			if err := coordinator.SendMove(mov); err != nil {
				t.Errorf("SendMove(%s): %v", mov, err)
			}
		}(mov)
	}
	wg.Wait()

	if link.overlapping {
		t.Fatal("a command was sent before the previous one was acknowledged")
	}

	if frames := link.frames(); len(frames) != 4 {
		t.Fatalf("frames written: %q", frames)
	}
}
