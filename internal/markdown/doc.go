// Package markdown imports landing content fixtures. Each document carries its
// variant and source locale in frontmatter; every top-level block of the body
// becomes one segment, numbered in document order.
package markdown
