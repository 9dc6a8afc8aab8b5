package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/magellan-fc/ak8963/hal/mpu"
)

func TestMagnetometerIdentity(t *testing.T) {
	mag := NewMagnetometer(NewClock(), MagOpts{})

	var buf [1]byte
	if err := mag.ReadRegister(regWIA, buf[:]); err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}
	if buf[0] != DeviceID {
		t.Errorf("identity = 0x%02x, want 0x%02x", buf[0], DeviceID)
	}
}

func TestMagnetometerPowerDownNoData(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	clock.Advance(time.Second)

	var st1 [1]byte
	if err := mag.ReadRegister(regST1, st1[:]); err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}
	if st1[0] != 0 {
		t.Errorf("ST1 = 0x%02x, want 0x00 while powered down", st1[0])
	}
}

func TestMagnetometerSingleShot(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	mag.SetField(16, 32, 48)

	if err := mag.WriteRegister(regCNTL, ModeSingle); err != nil {
		t.Fatalf("WriteRegister() error = %v", err)
	}

	// Not ready before the measurement completes.
	clock.Advance(DefaultMeasureTime / 2)
	var st1 [1]byte
	mag.ReadRegister(regST1, st1[:])
	if st1[0]&Status1DataReady != 0 {
		t.Error("data ready before measurement completed")
	}

	// Ready after.
	clock.Advance(DefaultMeasureTime)
	mag.ReadRegister(regST1, st1[:])
	if st1[0]&Status1DataReady == 0 {
		t.Fatal("data not ready after measurement completed")
	}

	// Data burst: 6 data bytes + status 2, little-endian per axis.
	var buf [7]byte
	if err := mag.ReadRegister(regHXL, buf[:]); err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}
	want := [7]byte{16, 0, 32, 0, 48, 0, 0}
	if buf != want {
		t.Errorf("data burst = %v, want %v", buf, want)
	}

	// The burst covered ST2, so the cycle is complete.
	mag.ReadRegister(regST1, st1[:])
	if st1[0]&Status1DataReady != 0 {
		t.Error("data ready not cleared by ST2 read")
	}
	if mag.Mode() != ModePowerDown {
		t.Errorf("mode = 0x%02x, want power-down after single-shot", mag.Mode())
	}
}

func TestMagnetometerNegativeField(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	mag.SetField(-1, -2, -3)
	mag.WriteRegister(regCNTL, ModeSingle)
	clock.Advance(DefaultMeasureTime)

	var buf [6]byte
	if err := mag.ReadRegister(regHXL, buf[:]); err != nil {
		t.Fatalf("ReadRegister() error = %v", err)
	}
	want := [6]byte{0xFF, 0xFF, 0xFE, 0xFF, 0xFD, 0xFF}
	if buf != want {
		t.Errorf("data = %v, want %v", buf, want)
	}
}

func TestMagnetometerContinuous(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	mag.WriteRegister(regCNTL, ModeContinuous1)

	clock.Advance(DefaultMeasureTime)
	var buf [7]byte
	mag.ReadRegister(regHXL, buf[:]) // consume the first measurement

	var st1 [1]byte
	mag.ReadRegister(regST1, st1[:])
	if st1[0]&Status1DataReady != 0 {
		t.Fatal("ready flag survived consumption")
	}

	// Continuous mode keeps measuring.
	clock.Advance(DefaultMeasureTime)
	mag.ReadRegister(regST1, st1[:])
	if st1[0]&Status1DataReady == 0 {
		t.Error("no new measurement in continuous mode")
	}
	if mag.Mode() != ModeContinuous1 {
		t.Errorf("mode = 0x%02x, want continuous", mag.Mode())
	}
}

func TestMagnetometerOverrun(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	mag.WriteRegister(regCNTL, ModeContinuous1)

	// Let several measurement windows pass unread.
	clock.Advance(5 * DefaultMeasureTime)

	var st1 [1]byte
	mag.ReadRegister(regST1, st1[:])
	if st1[0]&Status1DataOverrun == 0 {
		t.Error("overrun not flagged after missed measurements")
	}
}

func TestMagnetometerFuseROM(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{Trim: [3]uint8{100, 128, 200}})

	var trim [3]byte
	mag.ReadRegister(regASAX, trim[:])
	if trim != [3]byte{} {
		t.Errorf("trim visible outside fuse mode: %v", trim)
	}

	mag.WriteRegister(regCNTL, ModeFuseROM)
	mag.ReadRegister(regASAX, trim[:])
	if trim != [3]byte{100, 128, 200} {
		t.Errorf("trim = %v, want {100 128 200}", trim)
	}
}

func TestMagnetometerStatus2Injection(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	mag.SetStatus2(Status2Overflow)
	mag.WriteRegister(regCNTL, ModeSingle)
	clock.Advance(DefaultMeasureTime)

	var buf [7]byte
	mag.ReadRegister(regHXL, buf[:])
	if buf[6] != Status2Overflow {
		t.Errorf("ST2 = 0x%02x, want 0x%02x", buf[6], Status2Overflow)
	}
}

func TestMagnetometerFaultInjection(t *testing.T) {
	mag := NewMagnetometer(NewClock(), MagOpts{})
	fault := errors.New("bus wedged")

	mag.FailReads(fault)
	var buf [1]byte
	if err := mag.ReadRegister(regWIA, buf[:]); !errors.Is(err, fault) {
		t.Errorf("ReadRegister() error = %v, want %v", err, fault)
	}

	mag.FailWrites(fault)
	if err := mag.WriteRegister(regCNTL, ModeSingle); !errors.Is(err, fault) {
		t.Errorf("WriteRegister() error = %v, want %v", err, fault)
	}

	mag.FailReads(nil)
	mag.FailWrites(nil)
	if err := mag.ReadRegister(regWIA, buf[:]); err != nil {
		t.Errorf("ReadRegister() after clearing fault error = %v", err)
	}
}

func TestControllerPassthroughRequiresMaster(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	ctrl := NewController(mag)

	// Program a 1-byte identity read without enabling the master.
	ctrl.WriteRegister(mpu.RegI2CSlv0Addr, 0x0C|0x80)
	ctrl.WriteRegister(mpu.RegI2CSlv0Reg, regWIA)
	ctrl.WriteRegister(mpu.RegI2CSlv0Ctrl, 0x81)

	var buf [1]byte
	ctrl.ReadRegister(mpu.RegExtSensData00, buf[:])
	if buf[0] != 0 {
		t.Errorf("window = 0x%02x, want 0x00 with master disabled", buf[0])
	}
}

func TestControllerReadRelay(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	ctrl := NewController(mag)

	ctrl.WriteRegister(mpu.RegUserCtrl, 0x30)
	if !ctrl.MasterEnabled() {
		t.Fatal("master not enabled by USER_CTRL write")
	}

	ctrl.WriteRegister(mpu.RegI2CSlv0Addr, 0x0C|0x80)
	ctrl.WriteRegister(mpu.RegI2CSlv0Reg, regWIA)
	ctrl.WriteRegister(mpu.RegI2CSlv0Ctrl, 0x81)

	var buf [1]byte
	ctrl.ReadRegister(mpu.RegExtSensData00, buf[:])
	if buf[0] != DeviceID {
		t.Errorf("window = 0x%02x, want 0x%02x", buf[0], DeviceID)
	}
}

func TestControllerWriteRelay(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	ctrl := NewController(mag)

	ctrl.WriteRegister(mpu.RegUserCtrl, 0x30)
	ctrl.WriteRegister(mpu.RegI2CSlv0Addr, 0x0C)
	ctrl.WriteRegister(mpu.RegI2CSlv0Reg, regCNTL)
	ctrl.WriteRegister(mpu.RegI2CSlv0DO, ModeContinuous1)
	ctrl.WriteRegister(mpu.RegI2CSlv0Ctrl, 0x81)

	if mag.Mode() != ModeContinuous1 {
		t.Errorf("mode = 0x%02x, want continuous after relayed write", mag.Mode())
	}
}

func TestControllerThroughBridge(t *testing.T) {
	clock := NewClock()
	mag := NewMagnetometer(clock, MagOpts{})
	ctrl := NewController(mag)
	bridge := mpu.New(ctrl, mpu.Opts{Clock: clock})

	ctrl.WriteRegister(mpu.RegUserCtrl, 0x30)

	var buf [1]byte
	if err := bridge.ReadRegister(regWIA, buf[:]); err != nil {
		t.Fatalf("bridged ReadRegister() error = %v", err)
	}
	if buf[0] != DeviceID {
		t.Errorf("bridged identity = 0x%02x, want 0x%02x", buf[0], DeviceID)
	}
}

func TestClock(t *testing.T) {
	clock := NewClock()
	start := clock.Now()

	clock.Advance(3 * time.Millisecond)
	if got := clock.Now().Sub(start); got != 3*time.Millisecond {
		t.Errorf("Advance: elapsed = %v, want 3ms", got)
	}

	clock.Sleep(2 * time.Millisecond)
	if got := clock.Now().Sub(start); got != 5*time.Millisecond {
		t.Errorf("Sleep: elapsed = %v, want 5ms", got)
	}
}
