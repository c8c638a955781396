package activity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Events
	}{
		{"list", `["100m Sprint", " Long Jump "]`, Events{"100m Sprint", "Long Jump"}},
		{"comma separated", `"Drama, Group Dance ,"`, Events{"Drama", "Group Dance"}},
		{"single", `"Chess"`, Events{"Chess"}},
		{"blank", `""`, Events{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Events
			require.NoError(t, json.Unmarshal([]byte(tt.data), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad Events
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestQueryFilter_Match(t *testing.T) {
	chess := Activity{Type: Sports, Status: Upcoming}
	tests := []struct {
		filter QueryFilter
		want   bool
	}{
		{QueryFilter{}, true},
		{QueryFilter{Type: Sports}, true},
		{QueryFilter{Type: Cultural}, false},
		{QueryFilter{Status: Completed}, false},
		{QueryFilter{Type: Sports, Status: Upcoming}, true},
	}
	for _, tt := range tests {
		if got := tt.filter.Match(chess); got != tt.want {
			t.Errorf("%+v.Match() = %v; want %v", tt.filter, got, tt.want)
		}
	}
}
