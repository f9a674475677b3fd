package motion

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDriver_Run(t *testing.T) {
	d := NewDriver(nil)
	if d.State() != Idle || d.Progress() != 0 {
		t.Fatalf("new driver should be idle")
	}
	if _, changed := d.Tick(time.Second); changed {
		t.Errorf("idle driver should not move")
	}
	if err := d.Start(1800, 2000, 20*time.Second); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := d.Start(1800, 2000, 20*time.Second); !errors.Is(err, ErrRunning) {
		t.Errorf("start while running: want %s, got %v", ErrRunning, err)
	}
	var last float64
	for i := 0; i < 10; i++ {
		now, changed := d.Tick(time.Second)
		if !changed || now <= last {
			t.Fatalf("tick %d: time should move forward (%g after %g)", i, now, last)
		}
		last = now
	}
	if last != 1900 || d.Progress() != 0.5 {
		t.Errorf("half way: want 1900, got %g (progress %g)", last, d.Progress())
	}
	now, _ := d.Tick(time.Minute)
	if now != 2000 {
		t.Errorf("end: want 2000, got %g", now)
	}
	if d.State() != Interactive {
		t.Errorf("state: want %s, got %s", Interactive, d.State())
	}
}

func TestDriver_Cancel(t *testing.T) {
	d := NewDriver(EaseLinear)
	if d.Cancel() {
		t.Errorf("idle driver can not be cancelled")
	}
	d.Start(0, 100, 10*time.Second)
	d.Tick(3 * time.Second)
	if !d.Cancel() {
		t.Fatalf("running driver should be cancelled")
	}
	if d.State() != Interactive || d.Current() != 30 {
		t.Errorf("cancel should keep the current time: %s at %g", d.State(), d.Current())
	}
	if now, changed := d.Tick(3 * time.Second); changed || now != 30 {
		t.Errorf("cancelled driver should not resume: got %g", now)
	}
	if d.Cancel() {
		t.Errorf("cancel twice should do nothing")
	}
	if err := d.Start(0, 100, 10*time.Second); err != nil {
		t.Errorf("driver should start again once cancelled: %s", err)
	}
}

func TestDriver_Point(t *testing.T) {
	d := NewDriver(nil)
	d.Start(0, 100, time.Second)
	if d.Point(50) {
		t.Errorf("point should be ignored while running")
	}
	d.Tick(2 * time.Second)
	if !d.Point(20) || !d.Point(40) {
		t.Fatalf("point should be accepted when interactive")
	}
	if d.Point(math.NaN()) {
		t.Errorf("NaN should be rejected")
	}
	if now, changed := d.Tick(0); !changed || now != 40 {
		t.Errorf("last point should win: want 40, got %g", now)
	}
	if _, changed := d.Tick(0); changed {
		t.Errorf("no input should not move the time")
	}
	d.Seek(10)
	if d.Current() != 10 || d.State() != Interactive {
		t.Errorf("seek: want 10, got %g", d.Current())
	}
}

func TestDriver_Easing(t *testing.T) {
	for _, str := range []string{"linear", "quad", "cubic-in-out"} {
		ease, err := ParseEasing(str)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", str, err)
		}
		if ease(0) != 0 || ease(1) != 1 {
			t.Errorf("%s: easing should go from 0 to 1", str)
		}
		prev := 0.0
		for i := 1; i <= 20; i++ {
			p := ease(float64(i) / 20)
			if p < prev {
				t.Errorf("%s: easing should increase monotonically", str)
				break
			}
			prev = p
		}
	}
	if _, err := ParseEasing("elastic"); err == nil {
		t.Errorf("unknown easing: expected error")
	}
	d := NewDriver(EaseQuadInOut)
	d.Start(0, 100, 4*time.Second)
	if now, _ := d.Tick(time.Second); now != 12.5 {
		t.Errorf("quad easing at a quarter: want 12.5, got %g", now)
	}
}

func TestDriver_ZeroDuration(t *testing.T) {
	d := NewDriver(nil)
	d.Start(5, 10, 0)
	if now, _ := d.Tick(0); now != 10 || d.State() != Interactive {
		t.Errorf("zero duration should end at once: got %g (%s)", now, d.State())
	}
}
