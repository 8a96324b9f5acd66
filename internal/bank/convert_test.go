package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		wantType    string
		wantText    string
		wantOptions string
		wantAnswer  string
		wantIDs     string
	}{
		{
			name:        "multi answer list",
			json:        `{"type":"multiple_choice","content":"Pick two","options":[{"id":"a","text":"1"},{"id":"c","text":"3"}],"answer":["a","c"]}`,
			wantType:    types.QuestionMultipleChoice,
			wantText:    "Pick two",
			wantOptions: `[{"id":"a","text":"1"},{"id":"c","text":"3"}]`,
			wantAnswer:  "a,c",
			wantIDs:     `["a","c"]`,
		},
		{
			name:        "single answer string",
			json:        `{"content":"Pick one","options":["x","y"],"answer":"b"}`,
			wantType:    types.QuestionSingleChoice,
			wantText:    "Pick one",
			wantOptions: `["x","y"]`,
			wantAnswer:  "b",
			wantIDs:     `["b"]`,
		},
		{
			name:        "missing fields take defaults",
			json:        `{}`,
			wantType:    types.QuestionSingleChoice,
			wantOptions: `[]`,
			wantAnswer:  "",
			wantIDs:     `[""]`,
		},
		{
			name:        "null answer behaves like a missing one",
			json:        `{"type":null,"content":null,"answer":null}`,
			wantType:    types.QuestionSingleChoice,
			wantOptions: `[]`,
			wantIDs:     `[""]`,
		},
		{
			name:        "numeric answer keeps its literal text",
			json:        `{"answer":2}`,
			wantType:    types.QuestionSingleChoice,
			wantOptions: `[]`,
			wantAnswer:  "2",
			wantIDs:     `[2]`,
		},
		{
			name:        "non-ascii and html stay unescaped",
			json:        `{"content":"选择 <b>&</b>","options": [ "甲" , "乙" ],"answer":["<甲>"]}`,
			wantType:    types.QuestionSingleChoice,
			wantText:    "选择 <b>&</b>",
			wantOptions: `["甲","乙"]`,
			wantAnswer:  "<甲>",
			wantIDs:     `["<甲>"]`,
		},
		{
			name:        "repeated keys keep the last value",
			json:        `{"content":"old","content":"new","options":["x"],"options":["y","z"],"answer":"a","answer":["b","c"]}`,
			wantType:    types.QuestionSingleChoice,
			wantText:    "new",
			wantOptions: `["y","z"]`,
			wantAnswer:  "b,c",
			wantIDs:     `["b","c"]`,
		},
		{
			name:        "empty answer list",
			json:        `{"answer":[]}`,
			wantType:    types.QuestionSingleChoice,
			wantOptions: `[]`,
			wantAnswer:  "",
			wantIDs:     `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Convert(gjson.Parse(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, q.Type)
			assert.Equal(t, tt.wantText, q.Text)
			assert.Equal(t, tt.wantOptions, q.Options)
			assert.Equal(t, tt.wantAnswer, q.Answer)
			assert.Equal(t, tt.wantIDs, q.CorrectOptionIDs)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{name: "number element", json: `42`, wantErr: types.ErrNotObject},
		{name: "list element", json: `["a"]`, wantErr: types.ErrNotObject},
		{name: "non-string type", json: `{"type":3}`, wantErr: types.ErrInvalidField},
		{name: "object content", json: `{"content":{"zh":"x"}}`, wantErr: types.ErrInvalidField},
		{name: "object answer", json: `{"answer":{"a":true}}`, wantErr: types.ErrInvalidAnswer},
		{name: "list answer with numbers", json: `{"answer":["a",1]}`, wantErr: types.ErrInvalidAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(gjson.Parse(tt.json))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mixed.json", `[{"content":"ok","answer":"a"}, 7, {"answer":{"bad":1}}, {"content":"ok too"}]`)
	writeFile(t, dir, "broken.json", `{"content":"not a list"}`)

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	broken := Check(files[0])
	assert.ErrorIs(t, broken.ParseErr, types.ErrNotArray)
	assert.Zero(t, broken.Total)

	mixed := Check(files[1])
	require.NoError(t, mixed.ParseErr)
	assert.Equal(t, 4, mixed.Total)
	assert.Equal(t, 2, mixed.Valid)
	require.Len(t, mixed.Failures, 2)
	assert.Equal(t, 2, mixed.Failures[0].Index)
	assert.ErrorIs(t, mixed.Failures[0].Err, types.ErrNotObject)
	assert.Equal(t, 3, mixed.Failures[1].Index)
	assert.ErrorIs(t, mixed.Failures[1].Err, types.ErrInvalidAnswer)
}
