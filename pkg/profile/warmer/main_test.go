package warmer

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches cron run loops left behind by a missing Stop.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
