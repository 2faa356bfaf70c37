package avro

import (
	"github.com/linkedin/goavro/v2"
	"github.com/tencent-go/avrogen/errx"
)

// Validate parses text as an Avro schema.
func Validate(text []byte) errx.Error {
	if _, err := goavro.NewCodec(string(text)); err != nil {
		return errx.Validation.WithMsg("invalid avro schema").WithCause(err).Err()
	}
	return nil
}

// CanonicalForm returns the Parsing Canonical Form of text.
func CanonicalForm(text []byte) (string, errx.Error) {
	codec, err := goavro.NewCodec(string(text))
	if err != nil {
		return "", errx.Validation.WithMsg("invalid avro schema").WithCause(err).Err()
	}
	return codec.CanonicalSchema(), nil
}
