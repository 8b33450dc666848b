package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changelint configuration
# See 'changelint config show' for the effective values

dir: changelog                        # Directory holding the per-component changelogs
kinds:                                # Accepted change kinds (others produce a warning)
  - Added
  - Changed
  - Deprecated
  - Removed
  - Fixed
  - Security
components: []                        # Known component tags (empty = any tag accepted)
require_component: false              # Untagged entries are errors instead of warnings
strict: false                         # Warnings fail 'changelint lint'
plain: false                          # Disable colors and icons
remote_timeout: 5s                    # Timeout for 'lint --url'
concurrency: 4                        # Files linted in parallel
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"dir":   "changelog",
		"kinds": []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"},
		// components: empty registry accepts any tag; the file convention
		// does not validate tags against a list.
		"components":        []string{},
		"require_component": false,
		"strict":            false,
		"plain":             false,
		"remote_timeout":    (5 * time.Second).String(),
		"concurrency":       4,
	}
}
