package adapter

import (
	"github.com/goccy/go-json"
)

// JSON decodes attested action payloads and encodes outgoing events
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type goJSON struct{}

// NewJSON returns a JSON codec compatible with encoding/json
func NewJSON() JSON {
	return goJSON{}
}

func (goJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (goJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
