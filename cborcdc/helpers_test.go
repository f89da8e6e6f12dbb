package cborcdc_test

import "github.com/fxamacker/cbor/v2"

// testEncMode encodes arbitrary CBOR, to build malformed inputs.
var testEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()
