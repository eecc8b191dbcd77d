package cache

import (
	"testing"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"feed_get_posts"},
		},
		{
			name:  "multiple parts",
			parts: []string{"feed_get_posts", "group:42", "limit:50"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestHashKeyPartBoundaries(t *testing.T) {
	// Joining must not collapse distinct parameter splits onto one key
	a := HashKey("feed", "ab")
	b := HashKey("fee", "dab")
	if a == b {
		t.Errorf("HashKey() collapsed distinct part splits onto %s", a)
	}
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "pawpost:test",
		},
		{
			name:     "key with colon",
			key:      "test:key",
			expected: "pawpost:test:key",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "pawpost:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *Cache

	if _, err := cache.Get("key"); err != ErrCacheDisabled {
		t.Errorf("Get() on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := cache.Set("key", "value", 0); err != ErrCacheDisabled {
		t.Errorf("Set() on nil cache = %v, want ErrCacheDisabled", err)
	}
}
