package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClock_Now(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	c.Advance(5 * time.Second)
	if got, want := c.Now(), epoch.Add(5*time.Second); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClock_After(t *testing.T) {
	tests := []struct {
		name     string
		wait     time.Duration
		advance  time.Duration
		wantFire bool
	}{
		{"zero fires immediately", 0, 0, true},
		{"negative fires immediately", -time.Second, 0, true},
		{"partial advance", 5 * time.Second, 3 * time.Second, false},
		{"exact deadline", 5 * time.Second, 5 * time.Second, true},
		{"past deadline", 5 * time.Second, time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Fake(epoch)
			ch := c.After(tt.wait)
			c.Advance(tt.advance)

			select {
			case <-ch:
				if !tt.wantFire {
					t.Error("After fired before its deadline")
				}
			default:
				if tt.wantFire {
					t.Error("After did not fire")
				}
			}
		})
	}
}

func TestFakeClock_Sleep(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})

	go func() {
		c.Sleep(10 * time.Second)
		close(done)
	}()

	c.WaitForTimers(1)
	c.Advance(9 * time.Second)
	select {
	case <-done:
		t.Fatal("Sleep returned early")
	case <-time.After(20 * time.Millisecond):
	}

	c.Advance(time.Second)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sleep did not return after Advance")
	}
}

func TestFakeClock_Ticker(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for i := 0; i < 3; i++ {
		c.Advance(5 * time.Second)
		select {
		case <-ticker.C():
		default:
			t.Fatalf("tick %d not delivered", i)
		}
	}

	if got := c.PendingCount(); got != 1 {
		t.Errorf("PendingCount = %d, want 1", got)
	}

	ticker.Stop()
	c.Advance(5 * time.Second)
	select {
	case <-ticker.C():
		t.Error("tick delivered after Stop")
	default:
	}
	if got := c.PendingCount(); got != 0 {
		t.Errorf("PendingCount after Stop = %d, want 0", got)
	}
}

func TestFakeClock_TickerDropsOverflow(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(time.Second)
	defer ticker.Stop()

	c.Advance(10 * time.Second)

	received := 0
	for {
		select {
		case <-ticker.C():
			received++
			continue
		default:
		}
		break
	}
	if received != 1 {
		t.Errorf("received %d ticks, want 1 (buffer capacity)", received)
	}
}

func TestFakeClock_PartialAdvanceKeepsLaterTimers(t *testing.T) {
	c := Fake(epoch)
	early := c.After(time.Second)
	late := c.After(time.Hour)

	c.Advance(time.Minute)
	select {
	case at := <-early:
		if want := epoch.Add(time.Minute); !at.Equal(want) {
			t.Errorf("fired with %v, want %v", at, want)
		}
	default:
		t.Fatal("early timer did not fire")
	}
	select {
	case <-late:
		t.Fatal("late timer fired early")
	default:
	}
	if got := c.PendingCount(); got != 1 {
		t.Errorf("PendingCount = %d, want 1", got)
	}
}

func TestFakeClock_WaitForTimers(t *testing.T) {
	c := Fake(epoch)
	registered := make(chan struct{})
	go func() {
		c.WaitForTimers(2)
		close(registered)
	}()

	c.After(time.Second)
	select {
	case <-registered:
		t.Fatal("WaitForTimers returned with one timer")
	case <-time.After(20 * time.Millisecond):
	}

	c.After(time.Second)
	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("WaitForTimers did not return")
	}
}

func TestFakeClock_TickerStopTwice(t *testing.T) {
	c := Fake(epoch)
	ticker := c.NewTicker(time.Second)
	other := c.After(time.Minute)
	ticker.Stop()
	ticker.Stop()

	if got := c.PendingCount(); got != 1 {
		t.Fatalf("PendingCount = %d, want 1", got)
	}
	c.Advance(time.Minute)
	select {
	case <-other:
	default:
		t.Error("remaining timer did not fire")
	}
}

func TestFakeClock_NewTickerPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	Fake(epoch).NewTicker(0)
}

func TestRealClock(t *testing.T) {
	c := Real()
	before := time.Now()
	if c.Now().Before(before) {
		t.Error("Real().Now() went backwards")
	}

	select {
	case <-c.After(time.Millisecond):
	case <-time.After(time.Second):
		t.Fatal("Real().After did not fire")
	}
}
