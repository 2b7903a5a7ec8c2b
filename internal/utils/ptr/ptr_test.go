package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	p := To(42)
	assert.Equal(t, 42, *p)
	assert.Equal(t, "x", *String("x"))
	assert.Equal(t, int64(7), *Int64(7))
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, NonEmpty(""))
	assert.Equal(t, "adidas", *NonEmpty("adidas"))
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone[int64](nil))

	orig := Int64(5)
	c := Clone(orig)
	*c = 6
	assert.Equal(t, int64(5), *orig)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, "v", Deref(String("v")))
}
