// Package registry implements the read-side semantics of system
// configuration entries: decrypting sensitive values and grouping
// collections by category.
package registry

import (
	"fmt"

	"agentcore/src/model"
	"agentcore/src/security"
)

// Value returns the usable value of a configuration entry. Plain entries
// come back verbatim; encrypted entries are decrypted first, and a missing
// key or corrupt payload is an error rather than silently returning
// ciphertext.
func Value(cfg *model.SystemConfiguration) (string, error) {
	if !cfg.Encrypted {
		return cfg.Value, nil
	}

	plaintext, err := security.DecryptString(cfg.Value)
	if err != nil {
		return "", fmt.Errorf("decrypt configuration %q: %w", cfg.Key, err)
	}
	return plaintext, nil
}

// ByCategory partitions entries into per-category groups, preserving the
// relative order of entries within each group. Categories with no entries
// produce no key; empty input produces an empty map.
func ByCategory(configs []model.SystemConfiguration) map[string][]model.SystemConfiguration {
	groups := make(map[string][]model.SystemConfiguration)
	for _, cfg := range configs {
		groups[cfg.Category] = append(groups[cfg.Category], cfg)
	}
	return groups
}
