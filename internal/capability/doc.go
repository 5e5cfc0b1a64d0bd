// Package capability describes the optional, mutually exclusive API-client
// add-ons a new project can be created with. Each Variant maps to a static
// Module declaring the directories to create, the files to copy from the
// embedded optional/ tree and the dependencies to merge into package.json.
package capability
