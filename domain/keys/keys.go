package keys

import (
	"strings"
)

const (
	// PfxSession prefixes the credential of a tenant
	PfxSession = "session"
	// PfxPermission prefixes cached permission lists
	PfxPermission = "permission"
	// PfxCategory prefixes cached category lists
	PfxCategory = "category"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first component of a redis key, used as a metric tag
func GetPrefix(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}
