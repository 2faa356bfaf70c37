package util

import (
	"github.com/tencent-go/avrogen/errx"
	jsoniter "github.com/json-iterator/go"
)

type Serializer interface {
	Unmarshal(data []byte, dst any) errx.Error
	Marshal(src any) ([]byte, errx.Error)
}

// Json is the compact serializer used for API payloads.
func Json() Serializer {
	return compactJson
}

// PrettyJson indents with two spaces and keeps struct field order.
func PrettyJson() Serializer {
	return prettyJson
}

var (
	compactJson = &jsonSerializer{jsoniter.Config{
		SortMapKeys: true,
	}.Froze()}
	prettyJson = &jsonSerializer{jsoniter.Config{
		SortMapKeys:   true,
		IndentionStep: 2,
	}.Froze()}
)

type jsonSerializer struct {
	jsoniter.API
}

func (j *jsonSerializer) Unmarshal(data []byte, dst any) errx.Error {
	if err := j.API.Unmarshal(data, dst); err != nil {
		return errx.Wrap(err).AppendMsg("failed to unmarshal json data").Err()
	}
	return nil
}

func (j *jsonSerializer) Marshal(src any) ([]byte, errx.Error) {
	data, err := j.API.Marshal(src)
	if err != nil {
		return nil, errx.Wrap(err).AppendMsg("failed to marshal json data").Err()
	}
	return data, nil
}
