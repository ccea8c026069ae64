package statsview

import "testing"

func TestNew(t *testing.T) {
	s := New("", nil)
	if s.Addr() != DefaultAddr {
		t.Errorf("expected %s, got %s", DefaultAddr, s.Addr())
	}
	if s.URL() != "http://localhost:12600/debug/statsview" {
		t.Errorf("unexpected url %s", s.URL())
	}

	// stopping a server that never started is a no-op
	s.Stop()

	if s := New("127.0.0.1:9000", nil); s.Addr() != "127.0.0.1:9000" {
		t.Errorf("expected the given address, got %s", s.Addr())
	}
}
