package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Signer is the identity that broadcasts deployment transactions
type Signer struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
	Source  string // where the key came from, for display
}
