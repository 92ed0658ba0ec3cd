package pinctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGetLine_Output(t *testing.T) {
	out := " 4: op -- pn | hi // GPIO4 = output\n"

	state, err := parseGetLine(out)
	require.NoError(t, err)

	assert.Equal(t, 4, state.Pin)
	assert.Equal(t, "op", state.Mode)
	assert.Equal(t, "hi", state.Level)
}

func TestParseGetLine_Input(t *testing.T) {
	out := "23: ip    pd | lo // GPIO23 = input\n"

	state, err := parseGetLine(out)
	require.NoError(t, err)

	assert.Equal(t, 23, state.Pin)
	assert.Equal(t, "ip", state.Mode)
	assert.Equal(t, "lo", state.Level)
}

func TestParseGetLine_Garbage(t *testing.T) {
	_, err := parseGetLine("not pinctrl output\n")
	assert.Error(t, err)
}
