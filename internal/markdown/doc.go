// Package markdown renders Markdown sources with goldmark while handing
// [[...]] directives to the wikitext link and image expanders, so both
// syntaxes resolve titles the same way.
package markdown
