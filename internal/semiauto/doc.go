// Package semiauto expands an implementation template into tuple
// implementations.
//
// The template's self type is a placeholder identifier. Inside
// `for_tuples!` markers the body is copied once per tuple position with the
// placeholder replaced by the element identifier of that position; in
// methods with a receiver `Placeholder.method(..)` becomes
// `self.i.method(..)`. Outside markers the placeholder stands for the whole
// tuple type.
package semiauto
