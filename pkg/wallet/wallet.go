// Package wallet implements the signing capabilities the Veil client
// consumes: EIP-191 personal-message signatures for the session handshake
// and EIP-712 signatures for 0x exchange orders.
package wallet

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet signs with a single ECDSA private key. The derived address is the
// account the session handshake authenticates.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// New parses a hex-encoded private key (with or without 0x prefix).
func New(privateKeyHex string) (*Wallet, error) {
	keyHex := privateKeyHex
	if len(keyHex) >= 2 && keyHex[:2] == "0x" {
		keyHex = keyHex[2:]
	}

	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the wallet's Ethereum address.
func (w *Wallet) Address() common.Address {
	return w.address
}

// SignMessage produces an EIP-191 personal-message signature over msg,
// hex-encoded with V adjusted to 27/28.
func (w *Wallet) SignMessage(msg []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), w.key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return hexutil.Encode(sig), nil
}
