package tracker

import (
	"encoding/json"
	"fmt"
)

// EncodeLedger serializa el ledger completo como un objeto JSON plano {clave: bool}.
// Solo se guardan las marcas en true.
func EncodeLedger(m map[string]bool) ([]byte, error) {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		if v {
			out[k] = true
		}
	}
	return json.Marshal(out)
}

// DecodeLedger es la inversa de EncodeLedger. Datos vacíos => ledger vacío.
func DecodeLedger(b []byte) (map[string]bool, error) {
	out := map[string]bool{}
	if len(b) == 0 {
		return out, nil
	}
	var raw map[string]bool
	if err := json.Unmarshal(b, &raw); err != nil {
		return out, fmt.Errorf("decode ledger: %w", err)
	}
	for k, v := range raw {
		if v {
			out[k] = true
		}
	}
	return out, nil
}
