package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// Recognized question object fields.
const (
	fieldType    = "type"
	fieldContent = "content"
	fieldOptions = "options"
	fieldAnswer  = "answer"
)

// AnswerSeparator joins multi-answer lists in the answer column.
const AnswerSeparator = ","

// Convert turns one question object into a row. It fills Type, Text, Options,
// Answer and CorrectOptionIDs; identity, ownership and timestamps are left to
// the caller.
//
// A list answer is a multi-answer question: its strings are joined for the
// answer column and kept as a list in CorrectOptionIDs. A scalar answer is
// wrapped in a one-element list. A missing or null answer stores "" and [""].
func Convert(item gjson.Result) (*types.Question, error) {
	if !item.IsObject() {
		return nil, fmt.Errorf("%w, got %s", types.ErrNotObject, describe(item))
	}

	qtype, err := stringField(item, fieldType, types.DefaultQuestionType)
	if err != nil {
		return nil, err
	}
	content, err := stringField(item, fieldContent, "")
	if err != nil {
		return nil, err
	}

	options := "[]"
	if opt := lookup(item, fieldOptions); opt.Exists() {
		options = string(pretty.Ugly([]byte(opt.Raw)))
	}

	answer, correct, err := convertAnswer(lookup(item, fieldAnswer))
	if err != nil {
		return nil, err
	}

	return &types.Question{
		Text:             content,
		Type:             qtype,
		Options:          options,
		Answer:           answer,
		CorrectOptionIDs: correct,
	}, nil
}

// lookup returns the value of key in item. When key repeats, the last
// value wins.
func lookup(item gjson.Result, key string) gjson.Result {
	var v gjson.Result
	item.ForEach(func(k, val gjson.Result) bool {
		if k.Str == key {
			v = val
		}
		return true
	})
	return v
}

// stringField returns the string value of key, or def when it is absent or null.
func stringField(item gjson.Result, key, def string) (string, error) {
	v := lookup(item, key)
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return def, nil
	case v.Type == gjson.String:
		return v.Str, nil
	}
	return "", fmt.Errorf("%w %s: must be a string, got %s", types.ErrInvalidField, key, describe(v))
}

// convertAnswer returns the delimited answer column and its JSON list form.
func convertAnswer(v gjson.Result) (string, string, error) {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		ids, err := marshalStrings([]string{""})
		return "", ids, err
	case v.IsArray():
		answers := []string{}
		var bad bool
		v.ForEach(func(_, el gjson.Result) bool {
			if el.Type != gjson.String {
				bad = true
				return false
			}
			answers = append(answers, el.Str)
			return true
		})
		if bad {
			return "", "", types.ErrInvalidAnswer
		}
		ids, err := marshalStrings(answers)
		return strings.Join(answers, AnswerSeparator), ids, err
	case v.Type == gjson.String:
		ids, err := marshalStrings([]string{v.Str})
		return v.Str, ids, err
	case v.Type == gjson.Number, v.Type == gjson.True, v.Type == gjson.False:
		return v.Raw, "[" + v.Raw + "]", nil
	}
	return "", "", types.ErrInvalidAnswer
}

// marshalStrings encodes ss as a JSON list, leaving characters such as '<'
// and '&' unescaped.
func marshalStrings(ss []string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ss); err != nil {
		return "", fmt.Errorf("encoding answers: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
