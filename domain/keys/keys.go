package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxSuinsClient is used for prefixing cached sui rpc responses
	PfxSuinsClient = "suinsClient"
	// PfxQuery is used for prefixing query client entries in logs and metrics
	PfxQuery = "query"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key, which is the first one or two
// components.
//
// Example:
//
//	GetPrefix("suinsClient:resolve:alice.sui") == "suinsClient:resolve"
//	GetPrefix("healthcheck:testset") == "healthcheck"
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
