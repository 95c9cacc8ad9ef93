package composer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlay_SetAndValue(t *testing.T) {
	t.Parallel()

	o := NewOverlay(map[string]string{"AMBIENT": "x"})
	o.Set("FOO", "bar")

	value, ok := o.Value("FOO")
	require.True(t, ok)
	assert.Equal(t, "bar", value)

	// Ambient values are not implicitly part of the overlay.
	_, ok = o.Value("AMBIENT")
	assert.False(t, ok)
}

func TestOverlay_UnsetWinsOverSet(t *testing.T) {
	t.Parallel()

	o := NewOverlay(nil)
	o.Set("FOO", "bar")
	o.Unset("FOO")

	_, ok := o.Value("FOO")
	assert.False(t, ok)
	assert.True(t, o.IsUnset("FOO"))
	assert.Equal(t, []string{"FOO"}, o.Unsets())

	// A later Set clears the unset mark.
	o.Set("FOO", "baz")
	assert.False(t, o.IsUnset("FOO"))
}

func TestOverlay_Propagate(t *testing.T) {
	t.Parallel()

	o := NewOverlay(map[string]string{"PRESENT": "yes"})
	o.Propagate("PRESENT", "ABSENT")

	value, ok := o.Value("PRESENT")
	require.True(t, ok)
	assert.Equal(t, "yes", value)
	_, ok = o.Value("ABSENT")
	assert.False(t, ok)
}

func TestOverlay_AppendPath(t *testing.T) {
	t.Parallel()
	sep := string(os.PathListSeparator)

	t.Run("extends ambient value", func(t *testing.T) {
		t.Parallel()
		o := NewOverlay(map[string]string{"PATH": "/usr/bin"})
		o.AppendPath("PATH", "/build/bin")

		value, _ := o.Value("PATH")
		assert.Equal(t, "/usr/bin"+sep+"/build/bin", value)
	})

	t.Run("extends overlay value", func(t *testing.T) {
		t.Parallel()
		o := NewOverlay(map[string]string{"PATH": "/usr/bin"})
		o.Set("PATH", "/opt/bin")
		o.AppendPath("PATH", "/build/bin")

		value, _ := o.Value("PATH")
		assert.Equal(t, "/opt/bin"+sep+"/build/bin", value)
	})

	t.Run("starts empty variable", func(t *testing.T) {
		t.Parallel()
		o := NewOverlay(nil)
		o.AppendPath("LD_LIBRARY_PATH", "/build/lib")

		value, _ := o.Value("LD_LIBRARY_PATH")
		assert.Equal(t, "/build/lib", value)
	})
}

func TestOverlay_EnvironOrder(t *testing.T) {
	t.Parallel()

	o := NewOverlay(nil)
	o.Set("B", "2")
	o.Set("A", "1")
	o.Set("B", "3") // re-set keeps original position

	assert.Equal(t, []string{"B=3", "A=1"}, o.Environ())
}
