package token

// LookupKeyword classifies an identifier spelling. Keywords are lowercase
// only: "Return" stays an identifier. Type names such as int are ordinary
// identifiers resolved by the checker.
func LookupKeyword(ident string) (Kind, bool) {
	switch ident {
	case "return":
		return KwReturn, true
	}
	return Invalid, false
}
