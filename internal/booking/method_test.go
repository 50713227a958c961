package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/court-reservation/internal/model"
)

func TestClassifyMethod(t *testing.T) {
	tests := []struct {
		sourceType string
		want       string
	}{
		{"gcash", model.MethodGCash},
		{"paymaya", model.MethodMaya},
		{"grab_pay", model.MethodGrabPay},
		{"card", model.MethodBanking},
		{"GCash", model.MethodGCash},
		{" grab_pay ", model.MethodGrabPay},
		{"unknown_type", model.MethodGCash},
		{"", model.MethodGCash},
	}
	for _, tt := range tests {
		t.Run(tt.sourceType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMethod(tt.sourceType))
		})
	}
}
