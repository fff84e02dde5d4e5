// Package parse extracts on-chain identifiers from raw toolchain output.
// Extraction is best-effort: a miss leaves the field empty, it never fails.
package parse

import "regexp"

var (
	solanaMintRe = regexp.MustCompile(`Mint:\s*([1-9A-HJ-NP-Za-km-z]{32,44})`)
	solanaSigRe  = regexp.MustCompile(`Signature:\s*([1-9A-HJ-NP-Za-km-z]{32,88})`)

	evmAddressRe   = regexp.MustCompile(`Token deployed:\s*(0x[0-9a-fA-F]{40})`)
	evmTxLabeledRe = regexp.MustCompile(`(?i)transactionHash[\s:"]+(0x[0-9a-fA-F]{64})`)
	evmTxBareRe    = regexp.MustCompile(`\b(0x[0-9a-fA-F]{64})\b`)
)

// Result holds whatever identifiers were found in the output. Empty fields
// mean no match.
type Result struct {
	Identifier string
	TxHash     string
}

// Solana extracts the mint address and transaction signature from mint
// script output.
func Solana(output string) Result {
	var r Result
	if m := solanaMintRe.FindStringSubmatch(output); m != nil {
		r.Identifier = m[1]
	}
	if m := solanaSigRe.FindStringSubmatch(output); m != nil {
		r.TxHash = m[1]
	}
	return r
}

// EVM extracts the deployed contract address and transaction hash from forge
// output. The hash is located via its field label when present, otherwise
// the first bare 32-byte hex token is taken.
func EVM(output string) Result {
	var r Result
	if m := evmAddressRe.FindStringSubmatch(output); m != nil {
		r.Identifier = m[1]
	}
	if m := evmTxLabeledRe.FindStringSubmatch(output); m != nil {
		r.TxHash = m[1]
	} else if m := evmTxBareRe.FindStringSubmatch(output); m != nil {
		r.TxHash = m[1]
	}
	return r
}
