package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// containsFold compara sin distinguir mayúsculas con case folding Unicode.
// cases.Caser guarda estado, por eso se crea uno por llamada.
func containsFold(s, substr string) bool {
	return strings.Contains(cases.Fold().String(s), cases.Fold().String(substr))
}
