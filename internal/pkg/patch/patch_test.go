//go:build unit

package patch_test

import (
	"testing"

	"calendar-booking/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func ptr(v string) *string { return &v }

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{name: "absent", in: nil, want: "studio"},
		{name: "blank", in: ptr("   "), want: "studio"},
		{name: "trimmed", in: ptr("  mobile "), want: "mobile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, patch.Text(tt.in, "studio"))
		})
	}
}
