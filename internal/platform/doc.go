// Package platform provides cross-platform filesystem checks used before a
// project is scaffolded: write-permission probing, the "is this folder safe
// to populate" check, and permission changes that are no-ops on Windows.
package platform
