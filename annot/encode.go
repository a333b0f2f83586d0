package annot

import (
	"fmt"
	"strings"
)

// Encode compresses a semicolon-delimited annotation string into its binary
// form. Tokens are grouped by category (EC, GO, IPR); tokens with an
// unrecognized category prefix are ignored. Characters that cannot occur in
// a well-formed annotation value are reported as an error.
func Encode(input string) ([]byte, error) {
	if input == "" {
		return nil, nil
	}

	var ecs, gos, iprs []string
	for _, token := range strings.Split(input, ";") {
		switch {
		case strings.HasPrefix(token, "IPR:IPR"):
			iprs = append(iprs, token[len("IPR:IPR"):])
		case strings.HasPrefix(token, "GO:"):
			gos = append(gos, token[len("GO:"):])
		case strings.HasPrefix(token, "EC:"):
			ecs = append(ecs, token[len("EC:"):])
		}
	}

	grouped := strings.Join(ecs, ";") + "," + strings.Join(gos, ";") + "," + strings.Join(iprs, ";")

	encoded := make([]byte, 0, (len(grouped)+1)/2)
	for i := 0; i < len(grouped); i += 2 {
		c1 := charToCode[grouped[i]]
		if c1 < 0 {
			return nil, fmt.Errorf("annot: invalid character %q in annotation", grouped[i])
		}
		c2 := int8(padCode)
		if i+1 < len(grouped) {
			if c2 = charToCode[grouped[i+1]]; c2 < 0 {
				return nil, fmt.Errorf("annot: invalid character %q in annotation", grouped[i+1])
			}
		}
		encoded = append(encoded, byte(c1)<<4|byte(c2))
	}
	return encoded, nil
}
