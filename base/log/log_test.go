package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithFieldDoesNotShareBackingArray(t *testing.T) {
	base := Log().WithField("requestID", "abc")
	a := base.WithField("key", "a")
	b := base.WithField("key", "b")

	assert.Equal(t, []interface{}{"requestID", "abc"}, base.fields)
	assert.Equal(t, []interface{}{"requestID", "abc", "key", "a"}, a.fields)
	assert.Equal(t, []interface{}{"requestID", "abc", "key", "b"}, b.fields)
}

func TestWithFields(t *testing.T) {
	l := Log().WithFields(Fields{"err": "boom"})
	assert.Equal(t, []interface{}{"err", "boom"}, l.fields)
}
