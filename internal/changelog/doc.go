// Package changelog provides markdown changelog management for changelint.
//
// This package implements:
//   - Parsing of per-component markdown changelogs (`## Unreleased`,
//     `## Release YYYY-MM-DD`, `### <Kind>` and `- (tag): text` entries)
//   - Canonical markdown rendering that round-trips through the parser
//   - Release, kind and component querying for CLI display
//   - Editing operations: adding unreleased entries and cutting a release
//   - YAML and JSON export, terminal formatting and remote fetching
//
// The markdown file is the single source of truth. Every operation that
// modifies a changelog parses it, changes the in-memory model and renders
// it back in canonical form.
package changelog
