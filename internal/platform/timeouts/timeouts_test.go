package timeouts

import "testing"

func TestDefaultsArePositive(t *testing.T) {
	if Compile <= 0 {
		t.Fatalf("Compile = %v", Compile)
	}
	if TelemetryShutdown <= 0 || TelemetryShutdown >= Compile {
		t.Fatalf("TelemetryShutdown = %v", TelemetryShutdown)
	}
}
