package clinicaltrials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    StudyStatus
		wantErr bool
	}{
		{"", "", false},
		{"ALL", "", false},
		{"all", "", false},
		{"RECRUITING", StatusRecruiting, false},
		{" recruiting ", StatusRecruiting, false},
		{"not_yet_recruiting", StatusNotYetRecruiting, false},
		{"OPEN", "", true},
		{"RECRUITING,COMPLETED", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
