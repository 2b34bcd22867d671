package registry

import (
	"encoding/json"
	"errors"

	"github.com/vitalboard/platform/pkg/common/models"
	"github.com/vitalboard/platform/pkg/normalizer"
	"github.com/vitalboard/platform/pkg/risk"
)

var (
	errNotJSON  = errors.New("document is not valid JSON")
	errNotArray = errors.New("top-level value is not an array")
)

// ParseError marks a rejected import document. The import is all-or-nothing:
// a ParseError means the prior collection was left untouched.
type ParseError struct {
	reason error
}

func (e ParseError) Error() string {
	return e.reason.Error()
}

func (e ParseError) Unwrap() error {
	return e.reason
}

func IsParseError(err error) bool {
	var pe ParseError
	return errors.As(err, &pe)
}

// EncodeCollection serializes the collection the way it is exported and
// persisted: a pretty-printed JSON array of canonical records.
func EncodeCollection(list []models.Record) ([]byte, error) {
	if list == nil {
		list = []models.Record{}
	}
	return json.MarshalIndent(list, "", "  ")
}

// DecodeCollection reconstructs a collection from an untrusted document. The
// top level must parse as a JSON array; anything else aborts the whole
// import. Each element is passed through the normalizer and re-scored, so a
// risk value in the document is always discarded. Elements that are not
// objects degrade to all-default records rather than failing.
func DecodeCollection(document []byte, engine *risk.Engine) ([]models.Record, error) {
	var parsed interface{}
	if err := json.Unmarshal(document, &parsed); err != nil {
		return nil, ParseError{reason: errNotJSON}
	}
	items, ok := parsed.([]interface{})
	if !ok {
		return nil, ParseError{reason: errNotArray}
	}

	list := make([]models.Record, 0, len(items))
	for _, item := range items {
		data, _ := item.(map[string]interface{})
		rec := normalizer.Normalize(data)
		rec.Risk = engine.Score(rec)
		list = append(list, rec)
	}
	return list, nil
}
