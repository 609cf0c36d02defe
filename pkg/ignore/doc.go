// Package ignore compiles gitignore-style rule lines into a Matcher.
//
// Each rule is one of three kinds, decided by its shape:
//
//	build/      directory rule: matches when any segment of the path matches
//	docs/*.md   anchored rule: matches against the whole relative path
//	*.log       basename rule: matches against the final path segment
//
// Glob syntax is that of path.Match. Rules combine with OR: a path is ignored
// when any rule matches it. Negated rules ("!pattern") are not supported and
// are dropped at compile time.
//
// A Matcher is immutable. Build one per walk and pass it down; there is no
// package-level state.
package ignore
