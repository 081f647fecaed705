package bufferutil

import (
	"encoding/hex"

	"github.com/vulpemventures/go-elements/elementsutil"
)

// AssetHashFromBytes returns the hex asset id of an unconfidential output
// asset buffer. The first byte flagging confidential/unconfidential is
// stripped and the remainder is reversed.
func AssetHashFromBytes(buffer []byte) string {
	return hex.EncodeToString(elementsutil.ReverseBytes(buffer[1:]))
}

// AssetHashToBytes returns the unconfidential output buffer of an hex asset id.
func AssetHashToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	buffer = elementsutil.ReverseBytes(buffer)
	return append([]byte{0x01}, buffer...), nil
}

// ValueFromBytes returns the satoshi amount of an unconfidential output
// value buffer.
func ValueFromBytes(buffer []byte) uint64 {
	value, _ := elementsutil.ValueFromBytes(buffer)
	return value
}

// ValueToBytes returns the unconfidential output buffer of a satoshi amount.
func ValueToBytes(val uint64) ([]byte, error) {
	return elementsutil.ValueToBytes(val)
}

// TxIDFromBytes returns the hex id of a transaction hash buffer.
func TxIDFromBytes(buffer []byte) string {
	return hex.EncodeToString(elementsutil.ReverseBytes(buffer))
}

// TxIDToBytes returns the hash buffer of an hex transaction id.
func TxIDToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return elementsutil.ReverseBytes(buffer), nil
}

// BlinderFromBytes encodes a blinding factor revealed by unblinding an
// output to the hex format expected by the swap protocol, ie. with the byte
// order reversed.
func BlinderFromBytes(buffer []byte) string {
	return hex.EncodeToString(elementsutil.ReverseBytes(buffer))
}

// CommitmentFromBytes returns the hex encoding of an asset or value commitment.
func CommitmentFromBytes(buffer []byte) string {
	return hex.EncodeToString(buffer)
}

// CommitmentToBytes decodes an hex encoded asset or value commitment.
func CommitmentToBytes(str string) ([]byte, error) {
	return hex.DecodeString(str)
}
