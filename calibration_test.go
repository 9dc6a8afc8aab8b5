package ak8963

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGain(t *testing.T) {
	tests := []struct {
		trim uint8
		want float64
	}{
		{0, 15.0},
		{128, 30.0},
		{255, ((255.0-128)/256 + 1) * 30},
	}
	for _, tt := range tests {
		if got := Gain(tt.trim); got != tt.want {
			t.Errorf("Gain(%d) = %v, want %v", tt.trim, got, tt.want)
		}
	}
}

func TestGainMonotonicAndBounded(t *testing.T) {
	prev := Gain(0)
	for trim := 1; trim <= 255; trim++ {
		g := Gain(uint8(trim))
		if g < prev {
			t.Fatalf("Gain(%d) = %v < Gain(%d) = %v", trim, g, trim-1, prev)
		}
		if g < 15 || g >= 45 {
			t.Fatalf("Gain(%d) = %v outside [15, 45)", trim, g)
		}
		prev = g
	}
}

func TestInitSequence(t *testing.T) {
	m := newTransportMock()
	m.stub(RegASAX, 100, 128, 200)
	clock := &fakeClock{}

	d, err := New(m, Opts{Clock: clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	want := []busOp{
		{kind: "w", reg: RegControl, value: ModePowerDown},
		{kind: "w", reg: RegControl, value: ModeFuseROM},
		{kind: "r", reg: RegASAX, n: 3},
		{kind: "w", reg: RegControl, value: ModePowerDown},
		{kind: "r", reg: RegStatus1, n: 1},
		{kind: "r", reg: RegStatus2, n: 1},
		{kind: "w", reg: RegControl, value: ModeSingle},
	}
	if len(m.ops) != len(want) {
		t.Fatalf("ops = %+v, want %d operations", m.ops, len(want))
	}
	for i, op := range m.ops {
		if op != want[i] {
			t.Errorf("op[%d] = %+v, want %+v", i, op, want[i])
		}
	}

	wantSleeps := []time.Duration{
		20 * time.Millisecond,
		10 * time.Millisecond,
		10 * time.Millisecond,
		10 * time.Millisecond,
	}
	if len(clock.sleeps) != len(wantSleeps) {
		t.Fatalf("sleeps = %v, want %v", clock.sleeps, wantSleeps)
	}
	for i, s := range clock.sleeps {
		if s != wantSleeps[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, s, wantSleeps[i])
		}
	}

	wantGain := [3]float64{Gain(100), Gain(128), Gain(200)}
	if got := d.Gain(); got != wantGain {
		t.Errorf("Gain() = %v, want %v", got, wantGain)
	}
}

func TestInitArmsContinuousForAsynchronous(t *testing.T) {
	m := newQueuedMock()
	m.stub(RegASAX, 128, 128, 128)

	d, err := New(m, Opts{Protocol: ProtocolAsynchronous, Clock: &fakeClock{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	writes := m.writes()
	arm := writes[len(writes)-1]
	if arm.reg != RegControl || arm.value != ModeContinuous {
		t.Errorf("arm write = %+v, want control=0x%02x", arm, ModeContinuous)
	}
}

func TestInitTrimFaultKeepsUnityGain(t *testing.T) {
	m := newTransportMock()
	m.readErr[RegASAX] = errBus

	d, err := New(m, Opts{Clock: &fakeClock{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = d.Init(context.Background())
	if !errors.Is(err, errBus) {
		t.Fatalf("Init = %v, want %v", err, errBus)
	}

	if got := d.Gain(); got != [3]float64{1, 1, 1} {
		t.Errorf("Gain() after trim fault = %v, want unity", got)
	}

	// The remaining steps still run; the device ends up armed.
	writes := m.writes()
	arm := writes[len(writes)-1]
	if arm.reg != RegControl || arm.value != ModeSingle {
		t.Errorf("arm write = %+v, want control=0x%02x", arm, ModeSingle)
	}
}

func TestInitAccumulatesFaults(t *testing.T) {
	m := newTransportMock()
	m.writeErr[RegControl] = errBus
	m.readErr[RegStatus1] = errBus

	d, err := New(m, Opts{Clock: &fakeClock{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(context.Background()); !errors.Is(err, errBus) {
		t.Fatalf("Init = %v, want %v", err, errBus)
	}

	// Every step was still attempted.
	if got := len(m.ops); got != 7 {
		t.Errorf("ops = %d, want 7", got)
	}
}

func TestInitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTransportMock()
	d, err := New(m, Opts{Clock: &fakeClock{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Init = %v, want %v", err, context.Canceled)
	}

	// The sequence stops at the first delay.
	if got := len(m.ops); got != 1 {
		t.Errorf("ops = %d, want 1", got)
	}
}
