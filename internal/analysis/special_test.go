package analysis

import (
	"math"
	"testing"

	"github.com/nao1215/pwaudit/internal/model"
)

func TestSpecialCharacterCensus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		passwords []string
		want      model.SpecialCharacter
	}{
		{
			name:      "most used character",
			passwords: []string{"a!b!", "c@d"},
			want:      model.SpecialCharacter{Character: "!", Count: 2, Total: 3, Percent: 200.0 / 3, Found: true},
		},
		{
			name:      "ties go to the first seen character",
			passwords: []string{"a@", "b!"},
			want:      model.SpecialCharacter{Character: "@", Count: 1, Total: 2, Percent: 50, Found: true},
		},
		{
			name:      "non-ASCII letters are special",
			passwords: []string{"pässwörd"},
			want:      model.SpecialCharacter{Character: "ä", Count: 1, Total: 2, Percent: 50, Found: true},
		},
		{
			name:      "no special characters",
			passwords: []string{"abc", "123"},
			want:      model.SpecialCharacter{Character: model.NoSpecialCharacter},
		},
		{
			name:      "no passwords",
			passwords: nil,
			want:      model.SpecialCharacter{Character: model.NoSpecialCharacter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SpecialCharacterCensus(tt.passwords)
			if got.Character != tt.want.Character || got.Count != tt.want.Count ||
				got.Total != tt.want.Total || got.Found != tt.want.Found {
				t.Errorf("SpecialCharacterCensus() = %+v, want %+v", got, tt.want)
			}
			if math.Abs(got.Percent-tt.want.Percent) > 1e-9 {
				t.Errorf("percent = %v, want %v", got.Percent, tt.want.Percent)
			}
		})
	}
}
