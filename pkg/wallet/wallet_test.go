package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"veil-client/pkg/types"
)

// Well-known throwaway key; never funded.
const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestNewStripsHexPrefix(t *testing.T) {
	t.Parallel()

	plain, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prefixed, err := New("0x" + testKey)
	if err != nil {
		t.Fatalf("New with prefix: %v", err)
	}
	if plain.Address() != prefixed.Address() {
		t.Errorf("addresses differ: %s vs %s", plain.Address(), prefixed.Address())
	}
}

func TestNewRejectsMalformedKey(t *testing.T) {
	t.Parallel()

	if _, err := New("zznotakey"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestSignMessageRecoversAddress(t *testing.T) {
	t.Parallel()

	w, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	msg := []byte("challenge-uid-123")
	sigHex, err := w.SignMessage(msg)
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}

	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	if len(sig) != 65 {
		t.Fatalf("signature length = %d, want 65", len(sig))
	}
	if sig[64] != 27 && sig[64] != 28 {
		t.Fatalf("V = %d, want 27 or 28", sig[64])
	}

	// Recover the signer from the EIP-191 hash.
	recSig := make([]byte, 65)
	copy(recSig, sig)
	recSig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash(msg), recSig)
	if err != nil {
		t.Fatalf("SigToPub: %v", err)
	}
	if got := crypto.PubkeyToAddress(*pub); got != w.Address() {
		t.Errorf("recovered address %s, want %s", got, w.Address())
	}
}

func TestSignOrder(t *testing.T) {
	t.Parallel()

	w, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	order := &types.ZeroExOrder{
		SenderAddress:         "0x0000000000000000000000000000000000000000",
		MakerAddress:          w.Address().Hex(),
		TakerAddress:          "0x0000000000000000000000000000000000000000",
		MakerFee:              "0",
		TakerFee:              "0",
		MakerAssetAmount:      "10000000000000",
		TakerAssetAmount:      "600000000000000000",
		MakerAssetData:        "0xf47261b00000000000000000000000001dad4783cf3fe3085c1426157ab175a6119a04ba",
		TakerAssetData:        "0xf47261b0000000000000000000000000d0a1e359811322d97991e03f863a0c30c2cf029c",
		Salt:                  "72490223403265873943334279700441281187859805895396264962136793",
		ExchangeAddress:       "0x35dd2932454449b14cee11a94d3674a936d5d7b2",
		FeeRecipientAddress:   "0x0000000000000000000000000000000000000000",
		ExpirationTimeSeconds: "1754812800",
	}

	signed, err := w.SignOrder(order)
	if err != nil {
		t.Fatalf("SignOrder: %v", err)
	}
	if signed.ZeroExOrder != *order {
		t.Error("signed order mutated the descriptor")
	}

	sig, err := hexutil.Decode(signed.Signature)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	if len(sig) != 66 {
		t.Fatalf("signature length = %d, want 66 (v + r + s + type)", len(sig))
	}
	if sig[0] != 27 && sig[0] != 28 {
		t.Errorf("V = %d, want 27 or 28", sig[0])
	}
	if sig[65] != eip712SignatureType {
		t.Errorf("signature type byte = %#x, want %#x", sig[65], eip712SignatureType)
	}

	// Signing is deterministic for a fixed key and order.
	again, err := w.SignOrder(order)
	if err != nil {
		t.Fatalf("SignOrder (second): %v", err)
	}
	if again.Signature != signed.Signature {
		t.Error("repeated signing produced a different signature")
	}
}
