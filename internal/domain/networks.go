package domain

// Solana cluster identifiers.
const (
	SolanaNetworkMainnet = "mainnet"
	SolanaNetworkDevnet  = "devnet"
)

// SolanaExplorerBase is the block explorer used for Solana links.
const SolanaExplorerBase = "https://solscan.io"

// SolanaClusterSuffix returns the explorer query suffix for non-default
// clusters, empty for mainnet.
func SolanaClusterSuffix(network string) string {
	if network == SolanaNetworkDevnet {
		return "?cluster=devnet"
	}
	return ""
}

// EVMNetwork describes a supported EVM chain.
type EVMNetwork struct {
	ID       string
	Name     string
	RPC      string
	Explorer string
	Symbol   string
}

// EVMNetworks lists the supported EVM chains in display order.
var EVMNetworks = []EVMNetwork{
	{ID: "ethereum", Name: "Ethereum", RPC: "https://eth.llamarpc.com", Explorer: "https://etherscan.io", Symbol: "ETH"},
	{ID: "bsc", Name: "BSC", RPC: "https://bsc-dataseed.binance.org", Explorer: "https://bscscan.com", Symbol: "BNB"},
	{ID: "base", Name: "Base", RPC: "https://mainnet.base.org", Explorer: "https://basescan.org", Symbol: "ETH"},
}

// EVMNetworkByID looks up a network by its identifier.
func EVMNetworkByID(id string) (EVMNetwork, bool) {
	for _, n := range EVMNetworks {
		if n.ID == id {
			return n, true
		}
	}
	return EVMNetwork{}, false
}
