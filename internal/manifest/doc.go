// Package manifest reads, mutates and writes a project's package.json.
//
// The document is decoded token by token into a yaml.Node tree, which keeps every key in its original order. Fields the scaffolder never
// touches are written back exactly as they were read, re-indented with two
// spaces and terminated with the platform line ending. Manifests are checked
// against an embedded JSON Schema before any mutation.
package manifest
