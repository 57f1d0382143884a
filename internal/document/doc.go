// Package document assembles a README from section templates and operator
// answers into two synchronized outputs: a Markdown document and its HTML
// rendering.
//
// Every section passes through the same step that appends it to both
// outputs, so the Markdown and HTML documents always hold the same sections
// in the same order:
//
//	header
//	  section 1   (Markdown fragment, HTML fragment)
//	  toc         (outline derived from the selection order)
//	  section N   ...
//
// Rendering is deterministic: the same section order and answers always yield
// byte-identical documents.
package document
