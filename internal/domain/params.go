// Package domain holds the deployment parameter records and the value types
// shared between the chat layer, the session store and the orchestrators.
package domain

import (
	"strconv"
	"strings"
)

// Category identifies a deployment target ecosystem.
type Category string

const (
	// CategoryMetaplex is the Solana token mint path.
	CategoryMetaplex Category = "metaplex"
	// CategoryEVM is the EVM token contract path.
	CategoryEVM Category = "evm"
)

// Valid reports whether c is a known deployment category.
func (c Category) Valid() bool {
	return c == CategoryMetaplex || c == CategoryEVM
}

// RawParams is an untyped, possibly partial parameter record as assembled
// from session replies or a template document.
type RawParams map[string]string

// SolanaParams is a fully-defaulted Solana mint parameter record.
type SolanaParams struct {
	Name     string
	Symbol   string
	Tokens   float64
	URI      string
	Decimals int
	Network  string
	Prefix   string
	Suffix   string
}

// EVMParams is a fully-defaulted EVM token parameter record.
type EVMParams struct {
	Name     string
	Symbol   string
	Decimals int
	Network  string
}

// NormalizeSolana coerces a raw record into SolanaParams. It never fails:
// strings are trimmed, numbers parse permissively, and an unknown network
// falls back to mainnet. Validation happens later, in the orchestrator.
func NormalizeSolana(raw RawParams) SolanaParams {
	p := SolanaParams{
		Name:     strings.TrimSpace(raw["name"]),
		Symbol:   strings.TrimSpace(raw["symbol"]),
		URI:      strings.TrimSpace(raw["uri"]),
		Decimals: 6,
		Network:  SolanaNetworkMainnet,
		Prefix:   strings.TrimSpace(raw["prefix"]),
		Suffix:   strings.TrimSpace(raw["suffix"]),
	}
	p.Tokens, _ = strconv.ParseFloat(strings.TrimSpace(raw["tokens"]), 64)
	if d, err := strconv.Atoi(strings.TrimSpace(raw["decimals"])); err == nil && d >= 0 {
		p.Decimals = d
	}
	if n := strings.ToLower(strings.TrimSpace(raw["network"])); n == SolanaNetworkMainnet || n == SolanaNetworkDevnet {
		p.Network = n
	}
	return p
}

// Raw converts p back into the untyped record shape. Normalize(p.Raw())
// yields a record identical to p.
func (p SolanaParams) Raw() RawParams {
	raw := RawParams{
		"name":     p.Name,
		"symbol":   p.Symbol,
		"tokens":   FormatAmount(p.Tokens),
		"uri":      p.URI,
		"decimals": strconv.Itoa(p.Decimals),
		"network":  p.Network,
	}
	if p.Prefix != "" {
		raw["prefix"] = p.Prefix
	}
	if p.Suffix != "" {
		raw["suffix"] = p.Suffix
	}
	return raw
}

// NormalizeEVM coerces a raw record into EVMParams with the same permissive
// rules as NormalizeSolana; the fallback network is ethereum.
func NormalizeEVM(raw RawParams) EVMParams {
	p := EVMParams{
		Name:     strings.TrimSpace(raw["name"]),
		Symbol:   strings.TrimSpace(raw["symbol"]),
		Decimals: 18,
		Network:  "ethereum",
	}
	if d, err := strconv.Atoi(strings.TrimSpace(raw["decimals"])); err == nil && d >= 0 {
		p.Decimals = d
	}
	if n := strings.ToLower(strings.TrimSpace(raw["network"])); n != "" {
		if _, ok := EVMNetworkByID(n); ok {
			p.Network = n
		}
	}
	return p
}

// Raw converts p back into the untyped record shape.
func (p EVMParams) Raw() RawParams {
	return RawParams{
		"name":     p.Name,
		"symbol":   p.Symbol,
		"decimals": strconv.Itoa(p.Decimals),
		"network":  p.Network,
	}
}

// FormatAmount renders a token amount without exponent notation or
// trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
