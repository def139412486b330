package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"veil-client/pkg/types"
)

// eip712SignatureType is the 0x v2 signature-type byte appended to an
// EIP-712 order signature.
const eip712SignatureType = 0x02

// zeroExOrderTypes is the EIP-712 type set for a 0x v2 exchange order.
// The field order must match the exchange contract exactly.
var zeroExOrderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Order": {
		{Name: "makerAddress", Type: "address"},
		{Name: "takerAddress", Type: "address"},
		{Name: "feeRecipientAddress", Type: "address"},
		{Name: "senderAddress", Type: "address"},
		{Name: "makerAssetAmount", Type: "uint256"},
		{Name: "takerAssetAmount", Type: "uint256"},
		{Name: "makerFee", Type: "uint256"},
		{Name: "takerFee", Type: "uint256"},
		{Name: "expirationTimeSeconds", Type: "uint256"},
		{Name: "salt", Type: "uint256"},
		{Name: "makerAssetData", Type: "bytes"},
		{Name: "takerAssetData", Type: "bytes"},
	},
}

// SignOrder signs the unsigned 0x order embedded in a quote and returns the
// order with its packed signature (v || r || s || signatureType) attached.
// The descriptor is hashed exactly as issued by the server.
func (w *Wallet) SignOrder(order *types.ZeroExOrder) (*types.SignedZeroExOrder, error) {
	signed := *order

	typedData := apitypes.TypedData{
		Types:       zeroExOrderTypes,
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              "0x Protocol",
			Version:           "2",
			VerifyingContract: signed.ExchangeAddress,
		},
		Message: apitypes.TypedDataMessage{
			"makerAddress":          signed.MakerAddress,
			"takerAddress":          signed.TakerAddress,
			"feeRecipientAddress":   signed.FeeRecipientAddress,
			"senderAddress":         signed.SenderAddress,
			"makerAssetAmount":      signed.MakerAssetAmount,
			"takerAssetAmount":      signed.TakerAssetAmount,
			"makerFee":              signed.MakerFee,
			"takerFee":              signed.TakerFee,
			"expirationTimeSeconds": signed.ExpirationTimeSeconds,
			"salt":                  signed.Salt,
			"makerAssetData":        signed.MakerAssetData,
			"takerAssetData":        signed.TakerAssetData,
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("order hash: %w", err)
	}

	sig, err := crypto.Sign(hash, w.key)
	if err != nil {
		return nil, fmt.Errorf("sign order: %w", err)
	}

	v := sig[64]
	if v < 27 {
		v += 27
	}

	// 0x v2 signature layout: v (1) + r (32) + s (32) + type (1)
	packed := make([]byte, 0, 66)
	packed = append(packed, v)
	packed = append(packed, sig[:64]...)
	packed = append(packed, eip712SignatureType)

	return &types.SignedZeroExOrder{
		ZeroExOrder: signed,
		Signature:   hexutil.Encode(packed),
	}, nil
}
