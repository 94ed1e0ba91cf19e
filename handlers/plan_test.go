package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTripDates(t *testing.T) {
	dep, ret, err := parseTripDates("2025-06-02", "2025-06-08")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", dep.Format("2006-01-02"))
	assert.Equal(t, "2025-06-08", ret.Format("2006-01-02"))
}

func TestParseTripDates_RejectsMalformed(t *testing.T) {
	_, _, err := parseTripDates("06/02/2025", "2025-06-08")
	assert.Error(t, err)

	_, _, err = parseTripDates("2025-06-02", "")
	assert.Error(t, err)
}
