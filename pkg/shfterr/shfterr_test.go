package shfterr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportSingleError(t *testing.T) {
	err := fmt.Errorf("config file not found")
	assert.Equal(t, "error: config file not found", Report(err))
}

func TestReportChainsWrappedCauses(t *testing.T) {
	root := fmt.Errorf("permission denied")
	mid := fmt.Errorf("reading grammar config: %w", root)
	top := fmt.Errorf("loading grammar: %w", mid)

	want := "error: loading grammar: reading grammar config: permission denied\n" +
		"caused by: reading grammar config: permission denied\n" +
		"caused by: permission denied"

	assert.Equal(t, want, Report(top))
}

func TestReportNilErrorIsEmpty(t *testing.T) {
	assert.Equal(t, "", Report(nil))
}
