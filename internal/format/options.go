package format

// Options controls the layout of rendered code.
type Options struct {
	IndentWidth int
	UseTabs     bool
	// InlineWidth is the widest brace group body kept on one line.
	InlineWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	if o.InlineWidth <= 0 {
		o.InlineWidth = 60
	}
	return o
}
