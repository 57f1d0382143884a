// Package template resolves section identifiers to section templates.
//
// A section template is a Markdown file named after the uppercased section id
// (USAGE.md for "usage") holding at most one substitution token of the form
// <!-- usage -->. Files may start with YAML frontmatter carrying a name and
// description; the frontmatter is stripped from the body.
//
// Templates are resolved in order:
//  1. <templatesFolder>/<ID>.md (project-local)
//  2. ~/.config/readmegen/templates/<ID>.md (user global)
//  3. Built-in templates (embedded in binary)
package template
