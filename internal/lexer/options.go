package lexer

import (
	"nut/internal/diag"
	"nut/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil: ошибки молча пропускаются, лексинг продолжается
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
