package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "localhost:8000", "-x", "ignored", "-b"}
	got := FilterArgs(args, []string{"-a", "-b"})
	require.Equal(t, []string{"-a", "localhost:8000", "-b"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=1", "-a=x"}
	got := FilterArgs(args, []string{"--config", "-a"})
	require.Equal(t, []string{"--config=conf.json", "-a=x"}, got)
}

func TestFilterArgs_ValueLookingLikeFlagIsNotConsumed(t *testing.T) {
	args := []string{"-a", "-b", "v"}
	got := FilterArgs(args, []string{"-a", "-b"})
	require.Equal(t, []string{"-a", "-b", "v"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"cli", "-c", "conf.json", "-a", "ignored"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cli", "-config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cli"}
	require.Equal(t, "", JsonConfigFlags())
}
