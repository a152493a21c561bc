package infra

import (
	"testing"
	"time"
)

func TestKeyedThrottle_DropsInsideWindow(t *testing.T) {
	th := NewKeyedThrottle(2 * time.Second)

	if !th.Allow("KRW-BTC") {
		t.Error("expected first call to pass")
	}
	if th.Allow("KRW-BTC") {
		t.Error("expected second call inside window to be dropped")
	}
}

func TestKeyedThrottle_KeysAreIndependent(t *testing.T) {
	th := NewKeyedThrottle(2 * time.Second)

	th.Allow("KRW-BTC")
	if !th.Allow("KRW-ETH") {
		t.Error("expected a different key to pass")
	}
}

func TestKeyedThrottle_RefillsAfterWindow(t *testing.T) {
	th := NewKeyedThrottle(50 * time.Millisecond)

	th.Allow("KRW-BTC")
	time.Sleep(70 * time.Millisecond)

	if !th.Allow("KRW-BTC") {
		t.Error("expected call after window to pass")
	}
}
