package annot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports an annotation payload that cannot be decoded:
// an unknown character code or a structure with more category groups than
// the codec defines. Decoding does not attempt partial recovery.
var ErrMalformed = errors.New("annot: malformed annotation payload")

// prefixes maps the category group position in the encoded form back to the
// textual prefix stripped during encoding.
var prefixes = [3]string{"EC:", "GO:", "IPR:IPR"}

// Decode reverses Encode, producing the canonical textual form: tokens
// grouped EC, GO, IPR in that order, joined by ';', each category keeping
// the order its tokens were encoded in.
func Decode(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}

	var grouped strings.Builder
	grouped.Grow(len(payload) * 2)
	for i, b := range payload {
		c1, c2 := b>>4, b&0x0f
		if c1 >= byte(len(codeToChar)) || c2 >= byte(len(codeToChar)) {
			return "", fmt.Errorf("%w: character code out of range", ErrMalformed)
		}
		// Padding closes an odd tail: it is only valid in the low half of
		// the final byte.
		if c1 == padCode {
			return "", fmt.Errorf("%w: padding inside payload", ErrMalformed)
		}
		grouped.WriteByte(codeToChar[c1])
		if c2 == padCode {
			if i != len(payload)-1 {
				return "", fmt.Errorf("%w: padding inside payload", ErrMalformed)
			}
			continue
		}
		grouped.WriteByte(codeToChar[c2])
	}

	groups := strings.Split(grouped.String(), ",")
	if len(groups) > len(prefixes) {
		return "", fmt.Errorf("%w: %d category groups", ErrMalformed, len(groups))
	}

	var out strings.Builder
	for i, group := range groups {
		if group == "" {
			continue
		}
		for _, value := range strings.Split(group, ";") {
			out.WriteString(prefixes[i])
			out.WriteString(value)
			out.WriteByte(';')
		}
	}
	return strings.TrimSuffix(out.String(), ";"), nil
}
