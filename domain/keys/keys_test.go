package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "resolve-suins-address:alice.sui", RedisKey("resolve-suins-address", "alice.sui"))
	assert.Equal(t, "resolve-suins-name:", RedisKey("resolve-suins-name", ""))
	assert.Equal(t, "a", RedisKey("a"))
}

func TestGetPrefix(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"suinsClient:resolve:alice.sui", "suinsClient:resolve"},
		{"healthcheck:testset", "healthcheck"},
		{"plain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPrefix(tt.key))
		})
	}
}
