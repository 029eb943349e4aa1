// Package format renders token streams produced by the expanders as
// readable Rust source.
//
// Назначение: печать сгенерированных impl-блоков с отступами и пробелами,
// близкими к rustfmt.
// Не делает: разбора, переноса длинных строк, сохранения комментариев.
// Зависимости: internal/tt, go-runewidth.
package format
