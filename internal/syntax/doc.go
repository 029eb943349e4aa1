// Package syntax parses the item-level structure the generators need out of
// token trees: attributes, generics, where clauses, trait definitions and
// implementation blocks.
//
// Parsing is shallow. Types, expressions and method bodies stay token
// streams; only the boundaries between items and their headers are
// recognised. Every parsed node keeps the trees it was built from so the
// generators can re-emit untouched parts verbatim.
package syntax
