package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertResultSucceeded(t *testing.T) {
	assert.True(t, UpsertResult{StatusCode: 200}.Succeeded())
	assert.True(t, UpsertResult{StatusCode: 201}.Succeeded())
	assert.False(t, UpsertResult{StatusCode: 204}.Succeeded())
	assert.False(t, UpsertResult{StatusCode: 400, Message: "invalid sku"}.Succeeded())
	assert.False(t, UpsertResult{}.Succeeded())
}

func TestVariationOption(t *testing.T) {
	v := Variation{Attributes: []Attribute{{Name: "pa_eu_size", Option: "42"}}}
	opt, ok := v.Option("pa_eu_size")
	assert.True(t, ok)
	assert.Equal(t, "42", opt)

	_, ok = v.Option("color")
	assert.False(t, ok)
}
