package shelfdb

import "math/big"

var bigOne = big.NewInt(1)

// nextKey derives the next unique numeric key from the existing key set:
// the maximum over all keys consisting solely of decimal digits, plus one,
// or "1" when no such key exists. Non-numeric keys never affect the result.
//
// Keys are parsed as arbitrary-precision integers so that repeated
// allocation can never overflow.
func nextKey(keys []string) string {
	var max *big.Int
	for _, k := range keys {
		if !isAllDigits(k) {
			continue
		}
		n, ok := new(big.Int).SetString(k, 10)
		if !ok {
			continue
		}
		if max == nil || n.Cmp(max) > 0 {
			max = n
		}
	}
	if max == nil {
		return "1"
	}
	return max.Add(max, bigOne).String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
