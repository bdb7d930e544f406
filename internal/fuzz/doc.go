
// Package fuzztests houses Go fuzz harnesses for the nut front end
// (source -> lexer -> parser -> sema). They guard against panics, hangs and
// broken tree invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер
// и семантический анализ.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/sema, internal/testkit.

package fuzztests
