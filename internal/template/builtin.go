package template

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.md
var builtinFS embed.FS

// BuiltinSource returns the templates embedded in the binary.
func BuiltinSource() Source {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return Source{Name: "built-in", FS: sub}
}
