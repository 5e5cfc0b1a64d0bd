package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templateFS embed.FS

const (
	// BaseDir is the template tree copied into every project.
	BaseDir = "base"
	// OptionalDir holds capability module sources.
	OptionalDir = "optional"
)

// Templates returns the embedded template tree. Its top-level entries are
// BaseDir and OptionalDir.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// templateRenames maps template base names to the names written into the
// project. Dotfiles cannot live in the embedded tree, so they are stored
// without the leading dot.
var templateRenames = map[string]string{
	"gitignore":          ".gitignore",
	"README-template.md": "README.md",
}

// RenameTemplateFile applies the fixed template rename rules to a base name.
// Names without a rule pass through unchanged.
func RenameTemplateFile(name string) string {
	if renamed, ok := templateRenames[name]; ok {
		return renamed
	}
	return name
}
