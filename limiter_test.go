package folio

import (
	"testing"
	"time"
)

func TestLoginLimiterAllowsUnderLimit(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Check("10.0.0.1") {
			t.Fatalf("attempt %d blocked below the limit", i)
		}
		l.Record("10.0.0.1")
	}
	if l.Check("10.0.0.1") {
		t.Error("allowed past the limit")
	}
}

func TestLoginLimiterPerIP(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	defer l.Stop()

	l.Record("10.0.0.1")
	if l.Check("10.0.0.1") {
		t.Error("first ip should be blocked")
	}
	if !l.Check("10.0.0.2") {
		t.Error("second ip should be unaffected")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(1, 10*time.Millisecond)
	defer l.Stop()

	l.Record("10.0.0.1")
	if l.Check("10.0.0.1") {
		t.Fatal("should be blocked immediately after the attempt")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Check("10.0.0.1") {
		t.Error("attempt outside the window still counted")
	}
}
