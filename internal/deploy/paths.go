package deploy

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates the external toolchain checkouts relative to the project
// root.
type Paths struct {
	MetaplexDir     string
	MetaplexScript  string
	EVMDir          string
	EVMScript       string
	EVMBaseContract string
}

// ProjectPaths derives the toolchain layout under root.
func ProjectPaths(root string) Paths {
	return Paths{
		MetaplexDir:     filepath.Join(root, "metaplex-mint"),
		MetaplexScript:  filepath.Join(root, "metaplex-mint", "mint_via_metaplex.js"),
		EVMDir:          filepath.Join(root, "evm-token-cli"),
		EVMScript:       filepath.Join(root, "evm-token-cli", "script", "DeployGenerated.s.sol"),
		EVMBaseContract: filepath.Join(root, "evm-token-cli", "src", "CustomERC20.sol"),
	}
}

func ensureFile(path, label string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &PreconditionError{Resource: label, Path: path}
	}
	return nil
}

func ensureDir(path, label string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return &PreconditionError{Resource: fmt.Sprintf("%s directory", label), Path: path}
	}
	return nil
}
