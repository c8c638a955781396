package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestInitValidators(t *testing.T) {
	validate, translator := NewValidator()

	type draft struct {
		Name string `json:"name" validate:"required"`
		Code string `json:"code" validate:"omitempty,alphanum_"`
		Time string `json:"time" validate:"omitempty,hhmm"`
		Day  string `json:"day" validate:"omitempty,weekday"`
		Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	}

	tests := []struct {
		name string
		d    draft
		want map[string]string
	}{
		{name: "valid", d: draft{Name: "x", Code: "TN01_AB", Time: "7:30", Day: "Saturday", Date: "2025-04-01"}},
		{name: "required", d: draft{}, want: map[string]string{"name": "this field is required"}},
		{
			name: "bad formats",
			d:    draft{Name: "x", Code: "TN-01", Time: "24:10", Day: "Sunday", Date: "01/04/2025"},
			want: map[string]string{
				"code": "only alphanumeric characters and underscores are allowed",
				"time": "time must be a time of day formatted as HH:MM",
				"day":  "day must be a school day (Monday to Saturday)",
				"date": "date must be a date formatted as YYYY-MM-DD",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.d)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("validate.Struct() unexpected error = %v", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("validate.Struct() error = %v; want validator.ValidationErrors", err)
			}
			got := make(map[string]string, len(vErrs))
			for _, e := range vErrs {
				got[e.Field()] = e.Translate(translator)
			}
			for fld, msg := range tt.want {
				if got[fld] != msg {
					t.Errorf("%s = %q; want %q", fld, got[fld], msg)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("errors = %v; want %v", got, tt.want)
			}
		})
	}
}
