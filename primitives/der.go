package primitives

import (
	"errors"
	"math/big"
)

// DecodeDERSignature parses a DER-encoded ECDSA signature (as produced by
// btcec/v2/ecdsa.Signature.Serialize) into its (r, s) integer components.
// Lives here, rather than in txbuilder or oracle, so both packages can
// decode a signature without an import cycle between them.
func DecodeDERSignature(der []byte) (r, s *big.Int, err error) {
	if len(der) < 8 || der[0] != 0x30 {
		return nil, nil, errors.New("malformed DER signature")
	}
	totalLen := int(der[1])
	if len(der) != totalLen+2 {
		return nil, nil, errors.New("malformed DER signature length")
	}

	body := der[2:]
	rVal, rest, err := derReadInt(body)
	if err != nil {
		return nil, nil, err
	}
	sVal, rest2, err := derReadInt(rest)
	if err != nil {
		return nil, nil, err
	}
	if len(rest2) != 0 {
		return nil, nil, errors.New("trailing bytes after DER signature")
	}
	return rVal, sVal, nil
}

func derReadInt(b []byte) (*big.Int, []byte, error) {
	if len(b) < 3 || b[0] != 0x02 {
		return nil, nil, errors.New("malformed DER integer")
	}
	n := int(b[1])
	if len(b) < 2+n {
		return nil, nil, errors.New("truncated DER integer")
	}
	return new(big.Int).SetBytes(b[2 : 2+n]), b[2+n:], nil
}
