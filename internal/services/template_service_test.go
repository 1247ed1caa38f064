package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFormula(t *testing.T) {
	tests := []struct {
		name      string
		formula   string
		variables map[string]string
		want      string
	}{
		{
			name:      "all variables supplied",
			formula:   "Did you know that {statistic}% of {target_audience} make this mistake?",
			variables: map[string]string{"statistic": "90", "target_audience": "creators"},
			want:      "Did you know that 90% of creators make this mistake?",
		},
		{
			name:      "missing variable left as placeholder",
			formula:   "I tried {activity} for {duration}",
			variables: map[string]string{"activity": "cold showers"},
			want:      "I tried cold showers for {duration}",
		},
		{
			name:      "repeated placeholder",
			formula:   "{x} and {x} again",
			variables: map[string]string{"x": "this"},
			want:      "this and this again",
		},
		{
			name:    "no variables",
			formula: "Stop doing {common_practice} wrong!",
			want:    "Stop doing {common_practice} wrong!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderFormula(tt.formula, tt.variables))
		})
	}
}
