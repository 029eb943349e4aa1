package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadRawString             Code = 1006

	// Token trees and item syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnexpectedClose   Code = 2003
	SynMismatchedClose   Code = 2004
	SynExpectIdentifier  Code = 2005
	SynExpectSemicolon   Code = 2006
	SynExpectBody        Code = 2007
	SynUnclosedAngle     Code = 2008
	SynBadAttribute      Code = 2009

	// Генерация кортежных реализаций
	GenInfo                     Code = 3000
	GenMalformedArgument        Code = 3001
	GenMalformedBody            Code = 3002
	GenMissingSelfPlaceholder   Code = 3003
	GenRepetitionSyntax         Code = 3004
	GenUnsupportedFullAutomatic Code = 3005
	GenMissingTraitReference    Code = 3006

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadRawString:             "Malformed raw string literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedClose:          "Unexpected closing delimiter",
	SynMismatchedClose:          "Mismatched closing delimiter",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectBody:               "Expected item body",
	SynUnclosedAngle:            "Unclosed angle bracket",
	SynBadAttribute:             "Malformed attribute",
	GenInfo:                     "Generator information",
	GenMalformedArgument:        "Malformed tuple count argument",
	GenMalformedBody:            "Expected a trait definition or implementation",
	GenMissingSelfPlaceholder:   "Self type is not a placeholder identifier",
	GenRepetitionSyntax:         "Malformed tuple repetition",
	GenUnsupportedFullAutomatic: "Unsupported item for full-automatic mode",
	GenMissingTraitReference:    "Implementation does not implement a trait",
	IOLoadFileError:             "I/O load file error",
	IOWriteFileError:            "I/O write file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
