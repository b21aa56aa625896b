package version

import "testing"

func TestString(t *testing.T) {
	if got := String(); got != "dimreg dev (commit unknown, built unknown)" {
		t.Errorf("unexpected build stamp %q", got)
	}
}
