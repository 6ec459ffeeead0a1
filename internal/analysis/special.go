package analysis

import "github.com/nao1215/pwaudit/internal/model"

// SpecialCharacterCensus counts every character that is not an ASCII letter
// or digit across all passwords and reports the most used one. Ties go to
// the character seen first. When there are no special characters at all the
// result is the "None" sentinel with zero counts.
func SpecialCharacterCensus(passwords []string) model.SpecialCharacter {
	d := model.NewDistribution[rune]()
	for _, pwd := range passwords {
		for _, r := range pwd {
			if isASCIIAlnum(r) {
				continue
			}
			d.Add(r)
		}
	}

	if d.Total() == 0 {
		return model.SpecialCharacter{Character: model.NoSpecialCharacter}
	}

	top := d.MostCommon(1)[0]
	return model.SpecialCharacter{
		Character: string(top.Key),
		Count:     top.Count,
		Total:     d.Total(),
		Percent:   float64(top.Count) / float64(d.Total()) * 100,
		Found:     true,
	}
}

func isASCIIAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
