// Package tt holds token trees: the proc-macro style representation that the
// generators read and produce.
//
// A Stream is a flat sequence of trees; delimited regions are Groups with their
// own inner Stream. Trees are values and streams are never mutated in place:
// every rewrite builds new slices, so one parsed template can be folded once
// per tuple position without copies leaking between passes.
package tt
