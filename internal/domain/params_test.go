package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeSolana(t *testing.T) {
	tests := []struct {
		name string
		raw  RawParams
		want SolanaParams
	}{
		{
			name: "full record",
			raw: RawParams{
				"name": " My Token ", "symbol": "MTK", "tokens": "1000000000",
				"uri": "https://example.com/meta.json", "decimals": "9", "network": "devnet",
				"prefix": "ab", "suffix": "yz",
			},
			want: SolanaParams{
				Name: "My Token", Symbol: "MTK", Tokens: 1000000000,
				URI: "https://example.com/meta.json", Decimals: 9, Network: "devnet",
				Prefix: "ab", Suffix: "yz",
			},
		},
		{
			name: "defaults applied",
			raw:  RawParams{"name": "T", "symbol": "T", "tokens": "5", "uri": "u"},
			want: SolanaParams{Name: "T", Symbol: "T", Tokens: 5, URI: "u", Decimals: 6, Network: "mainnet"},
		},
		{
			name: "invalid network falls back silently",
			raw:  RawParams{"name": "T", "symbol": "T", "tokens": "5", "uri": "u", "network": "testnet"},
			want: SolanaParams{Name: "T", Symbol: "T", Tokens: 5, URI: "u", Decimals: 6, Network: "mainnet"},
		},
		{
			name: "invalid decimals falls back",
			raw:  RawParams{"name": "T", "symbol": "T", "tokens": "5", "uri": "u", "decimals": "lots"},
			want: SolanaParams{Name: "T", Symbol: "T", Tokens: 5, URI: "u", Decimals: 6, Network: "mainnet"},
		},
		{
			name: "unparseable supply becomes zero",
			raw:  RawParams{"name": "T", "symbol": "T", "tokens": "many", "uri": "u"},
			want: SolanaParams{Name: "T", Symbol: "T", Tokens: 0, URI: "u", Decimals: 6, Network: "mainnet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSolana(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeSolana() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEVM(t *testing.T) {
	got := NormalizeEVM(RawParams{"name": " Tok ", "symbol": "TOK", "decimals": "8", "network": "BSC"})
	want := EVMParams{Name: "Tok", Symbol: "TOK", Decimals: 8, Network: "bsc"}
	if got != want {
		t.Errorf("NormalizeEVM() = %+v, want %+v", got, want)
	}

	got = NormalizeEVM(RawParams{"name": "Tok", "symbol": "TOK", "network": "polygon"})
	want = EVMParams{Name: "Tok", Symbol: "TOK", Decimals: 18, Network: "ethereum"}
	if got != want {
		t.Errorf("NormalizeEVM() with unknown network = %+v, want %+v", got, want)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rawSol := RawParams{"name": " A ", "symbol": "A", "tokens": "bogus", "uri": "u", "network": "Devnet"}
	once := NormalizeSolana(rawSol)
	twice := NormalizeSolana(once.Raw())
	if once != twice {
		t.Errorf("NormalizeSolana not idempotent: %+v vs %+v", once, twice)
	}
	if !reflect.DeepEqual(once.Raw(), twice.Raw()) {
		t.Errorf("Raw() differs after renormalize: %v vs %v", once.Raw(), twice.Raw())
	}

	rawEVM := RawParams{"name": "B", "symbol": "B", "decimals": "oops", "network": "base"}
	onceEVM := NormalizeEVM(rawEVM)
	twiceEVM := NormalizeEVM(onceEVM.Raw())
	if onceEVM != twiceEVM {
		t.Errorf("NormalizeEVM not idempotent: %+v vs %+v", onceEVM, twiceEVM)
	}
}

func TestEVMNetworkByID(t *testing.T) {
	n, ok := EVMNetworkByID("base")
	if !ok || n.Name != "Base" || n.Explorer != "https://basescan.org" {
		t.Errorf("EVMNetworkByID(base) = %+v, %v", n, ok)
	}
	if _, ok := EVMNetworkByID("solana"); ok {
		t.Error("expected lookup miss for unknown network")
	}
}

func TestSolanaClusterSuffix(t *testing.T) {
	if got := SolanaClusterSuffix("devnet"); got != "?cluster=devnet" {
		t.Errorf("devnet suffix = %q", got)
	}
	if got := SolanaClusterSuffix("mainnet"); got != "" {
		t.Errorf("mainnet suffix = %q", got)
	}
}
