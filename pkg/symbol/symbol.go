// Package symbol interns symbol names so the rest of the interpreter can
// compare and store symbols as integers.
package symbol

import "fmt"

// ID identifies an interned symbol within the Table that issued it.  A table
// issues IDs densely starting from 1, so the zero ID never names a symbol.
type ID uint64

// GoString implements fmt.GoStringer.
func (id ID) GoString() string {
	return fmt.Sprintf("symbol.ID(%d)", uint64(id))
}

// String returns the name of id in table.  If table did not issue id String
// returns a placeholder like "<unknown #0x2a>".
func String(id ID, table Table) string {
	if s, ok := table.Symbol(id); ok {
		return s
	}
	return fmt.Sprintf("<unknown #%#x>", uint64(id))
}
