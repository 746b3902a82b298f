package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// FormatEther renders a wei amount as a decimal ether string with trailing
// zeros trimmed; a whole amount keeps a single decimal ("1.0", "0.0").
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	rat := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether))
	s := rat.FloatString(18)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
