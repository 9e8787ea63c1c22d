package state

import (
	"encoding/json"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type codec struct {
	name        string
	tempPattern string
	marshal     func(v any) ([]byte, error)
	unmarshal   func(data []byte, v any) error
}

var tomlCodec = codec{
	name:        "toml",
	tempPattern: ".telecom-state-*.toml.tmp",
	marshal:     toml.Marshal,
	unmarshal:   toml.Unmarshal,
}

// jsonCodec keeps documents written by older JSON-based deployments readable.
var jsonCodec = codec{
	name:        "json",
	tempPattern: ".telecom-state-*.json.tmp",
	marshal: func(v any) ([]byte, error) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	},
	unmarshal: json.Unmarshal,
}

func codecFor(path string) codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonCodec
	}
	return tomlCodec
}
