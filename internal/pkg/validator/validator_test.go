package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type scaleRequest struct {
	Category string  `validate:"required,category"`
	Exponent float64 `validate:"min=0.5,max=10,halfstep"`
}

func TestValidate_CustomTags(t *testing.T) {
	tests := []struct {
		name    string
		req     scaleRequest
		wantErr bool
	}{
		{name: "valid", req: scaleRequest{Category: "checked", Exponent: 2.5}},
		{name: "upper bound", req: scaleRequest{Category: "text", Exponent: 10}},
		{name: "not a half step", req: scaleRequest{Category: "text", Exponent: 2.3}, wantErr: true},
		{name: "below range", req: scaleRequest{Category: "delete", Exponent: 0}, wantErr: true},
		{name: "unknown category", req: scaleRequest{Category: "pin", Exponent: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type partialScale struct {
	Enabled  *bool    `validate:"required_without=Exponent"`
	Exponent *float64 `validate:"omitempty,min=0.5,max=10,halfstep"`
}

func TestValidate_PartialScale(t *testing.T) {
	on := true
	good, offStep := 1.5, 1.2

	assert.NoError(t, Validate(&partialScale{Enabled: &on}))
	assert.NoError(t, Validate(&partialScale{Exponent: &good}))
	assert.Error(t, Validate(&partialScale{Exponent: &offStep}))
	assert.Error(t, Validate(&partialScale{}))
}
