package ports

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date only", `"2024-06-01"`, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"2024-06-01T10:30:00Z"`, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), false},
		{"offset normalised", `"2024-06-01T12:30:00+02:00"`, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), false},
		{"garbage", `"next tuesday"`, time.Time{}, true},
		{"number", `20240601`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				is.True(err != nil)
				return
			}
			is.NoErr(err)
			is.True(d.Time.Equal(tt.want))
		})
	}
}

func TestDate_NullLeavesPointerNil(t *testing.T) {
	is := is.New(t)

	var req UpdateTaskRequest
	is.NoErr(json.Unmarshal([]byte(`{"dueDate": null}`), &req))
	is.Equal(req.DueDate.TimePtr(), nil)
}
