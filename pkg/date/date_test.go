package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := New(2025, time.March, 9)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-03-09"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, d, back)

	require.Error(t, json.Unmarshal([]byte(`"09/03/2025"`), &back))
}

func TestDaysUntil(t *testing.T) {
	due := New(2025, time.January, 31)
	require.Equal(t, 10, due.DaysUntil(New(2025, time.February, 10)))
	require.Equal(t, -1, due.DaysUntil(New(2025, time.January, 30)))
}

func TestScanString(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-12-01 00:00:00+00:00"))
	require.Equal(t, New(2024, time.December, 1), d)
}
