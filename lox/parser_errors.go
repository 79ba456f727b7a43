package lox

func (p *parser) errorAt(tok Token, message string) {
	p.diagnostics = append(p.diagnostics, tokenDiagnostic(tok, message))
}
