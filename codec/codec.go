package codec

import "github.com/cqkv/cmdlog/model"

type Codec interface {
	// Encode writes rec into buf and returns the record size, HeaderSize + BodyLength.
	// buf must hold at least that many bytes.
	Encode(rec model.Record, buf []byte) int

	// DecodeHeader reads the header at the start of buf
	DecodeHeader(buf []byte) (model.LogHeader, error)

	// Decode reads one record from the start of buf and returns it with its size.
	// The variable length fields of the record point into buf.
	Decode(buf []byte) (model.Record, int, error)

	// Describe renders every field of rec for diagnostics
	Describe(rec model.Record) string
}
