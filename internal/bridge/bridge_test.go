package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midipedals/internal/logger"
	"github.com/leandrodaf/midipedals/sdk/contracts"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type keyEvent struct {
	code  contracts.KeyCode
	value contracts.KeyValue
}

type fakeKeyboard struct {
	mu       sync.Mutex
	events   []keyEvent
	closed   bool
	closeErr error
}

func (k *fakeKeyboard) EmitKey(code contracts.KeyCode, value contracts.KeyValue) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return errors.New("emit on closed keyboard")
	}
	k.events = append(k.events, keyEvent{code, value})
	return nil
}

func (k *fakeKeyboard) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	return k.closeErr
}

type fakeConnection struct {
	client *fakeClient
}

func (c *fakeConnection) Close() error {
	c.client.mu.Lock()
	defer c.client.mu.Unlock()
	c.client.handler = nil
	c.client.disconnects++
	return nil
}

// fakeClient delivers messages queued in onConnect as soon as Connect succeeds.
type fakeClient struct {
	mu          sync.Mutex
	ports       []contracts.PortInfo
	listErr     error
	nameErr     error
	connectErr  error
	onConnect   [][]byte
	handler     contracts.MessageHandler
	connected   int
	connectedTo int
	disconnects int
}

func (c *fakeClient) ListPorts() ([]contracts.PortInfo, error) {
	return c.ports, c.listErr
}

func (c *fakeClient) PortName(index int) (string, error) {
	if c.nameErr != nil {
		return "", c.nameErr
	}
	return c.ports[index].Name, nil
}

func (c *fakeClient) Connect(index int, handler contracts.MessageHandler) (contracts.Connection, error) {
	if c.connectErr != nil {
		return nil, c.connectErr
	}
	c.mu.Lock()
	c.handler = handler
	c.connected++
	c.connectedTo = index
	c.mu.Unlock()

	for i, msg := range c.onConnect {
		handler(uint64(i)*1000, msg)
	}
	return &fakeConnection{client: c}, nil
}

func (c *fakeClient) Close() error { return nil }

func ports(names ...string) []contracts.PortInfo {
	out := make([]contracts.PortInfo, len(names))
	for i, n := range names {
		out[i] = contracts.PortInfo{Index: i, Name: n}
	}
	return out
}

type harness struct {
	client   *fakeClient
	keyboard *fakeKeyboard
	builds   int
	out      bytes.Buffer
}

func (h *harness) config(input io.Reader) Config {
	core, _ := observer.New(zapcore.DebugLevel)
	return Config{
		Client: h.client,
		NewKeyboard: func() (contracts.VirtualKeyboard, error) {
			h.builds++
			return h.keyboard, nil
		},
		Input:  input,
		Output: &h.out,
		Logger: logger.NewZapLoggerWithCore(core),
	}
}

func TestRun_SinglePortAutoSelected(t *testing.T) {
	h := &harness{client: &fakeClient{ports: ports("FBV Express Mk II")}, keyboard: &fakeKeyboard{}}

	if err := Run(context.Background(), h.config(strings.NewReader("\n"))); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := h.out.String()
	for _, want := range []string{
		"Choosing the only available input port: FBV Express Mk II\n",
		"\nOpening connection\n",
		"Connection open, reading input from 'FBV Express Mk II' (press enter to exit) ...\n",
		"Closing connection\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if h.client.disconnects != 1 || !h.keyboard.closed {
		t.Fatalf("teardown incomplete: disconnects=%d keyboardClosed=%v", h.client.disconnects, h.keyboard.closed)
	}
}

func TestRun_SelectedPortTranslatesPedal(t *testing.T) {
	h := &harness{
		client: &fakeClient{
			ports:     ports("Midi Through", "Pedalboard"),
			onConnect: [][]byte{{176, 66, 127}},
		},
		keyboard: &fakeKeyboard{},
	}

	if err := Run(context.Background(), h.config(strings.NewReader("0\n\n"))); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if h.client.connectedTo != 0 {
		t.Fatalf("connected to port %d, want 0", h.client.connectedTo)
	}
	want := []keyEvent{{contracts.KeyDown, contracts.KeyPressed}, {contracts.KeyDown, contracts.KeyReleased}}
	if len(h.keyboard.events) != len(want) {
		t.Fatalf("events=%v, want %v", h.keyboard.events, want)
	}
	for i := range want {
		if h.keyboard.events[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, h.keyboard.events[i], want[i])
		}
	}
	if !strings.Contains(h.out.String(), "0: [176 66 127] (len = 3)\n") {
		t.Fatalf("message not echoed:\n%s", h.out.String())
	}
}

func TestRun_NoteOnIsLoggedButIgnored(t *testing.T) {
	h := &harness{
		client:   &fakeClient{ports: ports("Pedalboard"), onConnect: [][]byte{{144, 60, 100}}},
		keyboard: &fakeKeyboard{},
	}

	if err := Run(context.Background(), h.config(strings.NewReader(""))); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.keyboard.events) != 0 {
		t.Fatalf("events=%v, want none", h.keyboard.events)
	}
	if !strings.Contains(h.out.String(), "0: [144 60 100] (len = 3)\n") {
		t.Fatalf("message not echoed:\n%s", h.out.String())
	}
}

func TestRun_InvalidSelectionNeverConnects(t *testing.T) {
	h := &harness{client: &fakeClient{ports: ports("a", "b")}, keyboard: &fakeKeyboard{}}

	err := Run(context.Background(), h.config(strings.NewReader("abc\n")))
	if !errors.Is(err, contracts.ErrInvalidSelection) {
		t.Fatalf("err=%v, want ErrInvalidSelection", err)
	}
	if h.client.connected != 0 || h.builds != 0 {
		t.Fatalf("connected=%d builds=%d, want none", h.client.connected, h.builds)
	}
}

func TestRun_SetupFailures(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeClient
		kbErr   error
		wantErr error
	}{
		{"no ports", &fakeClient{}, nil, contracts.ErrNoDeviceFound},
		{"list fails", &fakeClient{listErr: errors.New("alsa: no sequencer")}, nil, nil},
		{"name unavailable", &fakeClient{ports: ports("a"), nameErr: errors.New("no name")}, nil, contracts.ErrPortNameUnavailable},
		{"device build", &fakeClient{ports: ports("a")}, errors.New("permission denied"), contracts.ErrDeviceBuildFailure},
		{"connect fails", &fakeClient{ports: ports("a"), connectErr: errors.New("busy")}, nil, contracts.ErrConnectionFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := &fakeKeyboard{}
			h := &harness{client: tt.client, keyboard: kb}
			cfg := h.config(strings.NewReader("\n"))
			if tt.kbErr != nil {
				cfg.NewKeyboard = func() (contracts.VirtualKeyboard, error) { return nil, tt.kbErr }
			}

			err := Run(context.Background(), cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v, want %v", err, tt.wantErr)
			}
			if strings.Contains(h.out.String(), "Connection open") {
				t.Fatal("reported an open connection after a setup failure")
			}
		})
	}
}

func TestRun_ConnectFailureReleasesKeyboard(t *testing.T) {
	kb := &fakeKeyboard{}
	h := &harness{client: &fakeClient{ports: ports("a"), connectErr: errors.New("busy")}, keyboard: kb}

	_ = Run(context.Background(), h.config(strings.NewReader("\n")))
	if !kb.closed {
		t.Fatal("keyboard left open")
	}
}

func TestRun_KeyboardCloseErrorSurfaces(t *testing.T) {
	closeErr := errors.New("uinput destroy failed")
	h := &harness{client: &fakeClient{ports: ports("a")}, keyboard: &fakeKeyboard{closeErr: closeErr}}

	err := Run(context.Background(), h.config(strings.NewReader("\n")))
	if !errors.Is(err, closeErr) {
		t.Fatalf("err=%v, want %v", err, closeErr)
	}
}

func TestRun_ContextCancelStops(t *testing.T) {
	h := &harness{client: &fakeClient{ports: ports("a")}, keyboard: &fakeKeyboard{}}
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, h.config(pr)) }()

	deadline := time.After(2 * time.Second)
	for {
		h.client.mu.Lock()
		connected := h.client.connected
		h.client.mu.Unlock()
		if connected == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("never connected")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if h.client.disconnects != 1 {
		t.Fatalf("disconnects=%d", h.client.disconnects)
	}
}

func TestRun_LogsPortDetails(t *testing.T) {
	client := &fakeClient{ports: []contracts.PortInfo{{
		Index:        0,
		Name:         "FBV Express Mk II",
		EntityName:   "FBV Express",
		Manufacturer: "Line 6",
	}}}
	h := &harness{client: client, keyboard: &fakeKeyboard{}}
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := h.config(strings.NewReader("\n"))
	cfg.Logger = logger.NewZapLoggerWithCore(core)

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries := logs.FilterMessage("Bridge running").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["entityName"] != "FBV Express" || ctx["manufacturer"] != "Line 6" {
		t.Fatalf("port details missing: %#v", ctx)
	}
}
