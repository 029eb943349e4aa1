// Package token defines lexical token kinds and trivia for the Rust subset that
// tuplegen reads.
// Invariants:
//   - Token.Text is the exact source slice, except that identifiers are NFC
//     normalised and doc comments carry only their content.
//   - Punctuation is lexed one character per token (proc-macro model); multi
//     character operators are rebuilt from Joint spacing by internal/tt.
//   - Keywords are identifiers. IsKeyword answers keyword questions for the
//     parser and printer; the lexer never produces a keyword kind.
//   - Comments and whitespace are leading Trivia and never appear in the stream.
package token
