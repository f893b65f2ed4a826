package install

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, "null", v.String())

	require.NoError(t, json.Unmarshal([]byte(" null "), &v))
	assert.True(t, v.IsNull())
	assert.True(t, v.Equal(Value{}))

	b, err := json.Marshal(struct {
		V Value `json:"v"`
	}{})
	require.NoError(t, err)
	assert.Equal(t, `{"v":null}`, string(b))
}

func TestValueEqual(t *testing.T) {
	var a, b Value
	require.NoError(t, json.Unmarshal([]byte(`{"type": "grub", "location": "/dev/sda"}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"location":"/dev/sda","type":"grub"}`), &b))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Value{}))
	assert.False(t, a.Equal(MustValue("grub")))
}

func TestValueDecode(t *testing.T) {
	v := MustValue([]string{"htop", "vim"})
	var pkgs []string
	require.NoError(t, v.Decode(&pkgs))
	assert.Equal(t, []string{"htop", "vim"}, pkgs)

	var untouched = []string{"keep"}
	require.NoError(t, Value{}.Decode(&untouched))
	assert.Equal(t, []string{"keep"}, untouched)

	var n int
	assert.Error(t, v.Decode(&n))
}

func TestNewValueError(t *testing.T) {
	_, err := NewValue(make(chan int))
	assert.Error(t, err)
	assert.Panics(t, func() { MustValue(func() {}) })
}
