package model

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "string", input: `{"userId":"39"}`, want: "39"},
		{name: "number", input: `{"userId":39}`, want: "39"},
		{name: "empty string", input: `{"userId":""}`, want: ""},
		{name: "null", input: `{"userId":null}`, want: ""},
		{name: "missing", input: `{}`, want: ""},
		{name: "object", input: `{"userId":{"id":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev struct {
				UserID FlexibleID `json:"userId"`
			}
			err := json.Unmarshal([]byte(tt.input), &ev)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.UserID.String())
		})
	}
}

func TestFlexibleID_Int64(t *testing.T) {
	id, err := NewFlexibleID("26").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(26), id)

	_, err = NewFlexibleID("").Int64()
	assert.Error(t, err)

	data, err := json.Marshal(NewFlexibleID("26"))
	require.NoError(t, err)
	assert.Equal(t, `"26"`, string(data))
}

func TestLogEvent_Validate(t *testing.T) {
	page := func(p string) *string { return &p }
	ts := int64(1541721977796)
	session := int64(818)
	level := "free"

	tests := []struct {
		name       string
		event      LogEvent
		wantFields []string
	}{
		{
			name:  "non-playback event needs only ts and page",
			event: LogEvent{TS: &ts, Page: page("Home")},
		},
		{
			name:       "missing ts and page",
			event:      LogEvent{},
			wantFields: []string{"ts", "page"},
		},
		{
			name:  "complete NextSong",
			event: LogEvent{TS: &ts, Page: page(PageNextSong), UserID: NewFlexibleID("15"), Level: &level, SessionID: &session},
		},
		{
			name:       "NextSong without user",
			event:      LogEvent{TS: &ts, Page: page(PageNextSong), Level: &level, SessionID: &session},
			wantFields: []string{"userId"},
		},
		{
			name:       "NextSong with non-numeric user",
			event:      LogEvent{TS: &ts, Page: page(PageNextSong), UserID: NewFlexibleID("abc"), Level: &level, SessionID: &session},
			wantFields: []string{"userId"},
		},
		{
			name:       "NextSong without level and session",
			event:      LogEvent{TS: &ts, Page: page(PageNextSong), UserID: NewFlexibleID("15")},
			wantFields: []string{"level", "sessionId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve ValidationErrors
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantFields, ve.Fields())
		})
	}
}

func TestMalformedRecordError(t *testing.T) {
	cause := ValidationErrors{{Field: "title", Message: "is missing or null"}}

	err := &MalformedRecordError{Path: "/data/song.json", Line: 3, Err: cause}
	assert.Equal(t, "malformed record at /data/song.json:3: validation error for field 'title': is missing or null", err.Error())

	var ve ValidationErrors
	assert.True(t, errors.As(err, &ve))

	noLine := &MalformedRecordError{Path: "/data/song.json", Err: errors.New("expected exactly one song record, got 2")}
	assert.Equal(t, "malformed record in /data/song.json: expected exactly one song record, got 2", noLine.Error())
}

func TestRowCounts(t *testing.T) {
	c := RowCounts{Songs: 1, Artists: 1}
	c.Add(RowCounts{Users: 2, Times: 3, SongPlays: 4})
	assert.Equal(t, RowCounts{Songs: 1, Artists: 1, Users: 2, Times: 3, SongPlays: 4}, c)
	assert.Equal(t, int64(11), c.Total())
}
