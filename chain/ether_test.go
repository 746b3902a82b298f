package chain

import (
	"math/big"
	"testing"
)

func TestFormatEther(t *testing.T) {
	cases := []struct {
		wei  string
		want string
	}{
		{"0", "0.0"},
		{"1000000000000000000", "1.0"},
		{"1500000000000000000", "1.5"},
		{"500000000000000000", "0.5"},
		{"1", "0.000000000000000001"},
		{"10500000000000000000", "10.5"},
		{"1230000000000000000", "1.23"},
	}
	for _, tc := range cases {
		wei, ok := new(big.Int).SetString(tc.wei, 10)
		if !ok {
			t.Fatalf("bad fixture %q", tc.wei)
		}
		if got := FormatEther(wei); got != tc.want {
			t.Fatalf("FormatEther(%s): expected %s, got %s", tc.wei, tc.want, got)
		}
	}
	if got := FormatEther(nil); got != "0.0" {
		t.Fatalf("FormatEther(nil): expected 0.0, got %s", got)
	}
}
