package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident    // foo, r#type
	Lifetime // 'a, 'static
	Literal  // see LitKind
	Punct    // single punctuation character

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	DocOuter // /// text, /** text */
	DocInner // //! text, /*! text */
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	Lifetime: "Lifetime",
	Literal:  "Literal",
	Punct:    "Punct",
	LParen:   "LParen",
	RParen:   "RParen",
	LBrace:   "LBrace",
	RBrace:   "RBrace",
	LBracket: "LBracket",
	RBracket: "RBracket",
	DocOuter: "DocOuter",
	DocInner: "DocInner",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// LitKind classifies literal tokens.
type LitKind uint8

const (
	LitNone LitKind = iota
	LitInt
	LitFloat
	LitChar
	LitByte
	LitStr
	LitByteStr
	LitRawStr
	LitRawByteStr
	LitCStr
)

var litNames = [...]string{
	LitNone:       "None",
	LitInt:        "Int",
	LitFloat:      "Float",
	LitChar:       "Char",
	LitByte:       "Byte",
	LitStr:        "Str",
	LitByteStr:    "ByteStr",
	LitRawStr:     "RawStr",
	LitRawByteStr: "RawByteStr",
	LitCStr:       "CStr",
}

func (k LitKind) String() string {
	if int(k) < len(litNames) {
		return litNames[k]
	}
	return "LitKind(?)"
}

// IsOpen reports whether k opens a delimited group.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a delimited group.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing kind matching an opening delimiter.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
