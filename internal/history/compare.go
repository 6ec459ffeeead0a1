package history

import (
	"cmp"
	"time"

	"github.com/nao1215/pwaudit/internal/model"
)

// Direction summarizes whether exposure grew between two runs.
type Direction string

const (
	// DirectionWorsened means more high value target exposure.
	DirectionWorsened Direction = "worsened"
	// DirectionImproved means less high value target exposure.
	DirectionImproved Direction = "improved"
	// DirectionUnchanged means the exposure did not change.
	DirectionUnchanged Direction = "unchanged"
)

// RunSummary contains the headline numbers of one run.
type RunSummary struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	TotalEntries     int       `json:"total_entries"`
	UniquePasswords  int       `json:"unique_passwords"`
	CompromisedCount int       `json:"compromised_count"`
	CompromisedUsers int       `json:"compromised_users"`
	UsernameReuse    int       `json:"username_reuse"`
}

func summarize(r *model.Report) RunSummary {
	return RunSummary{
		RunID:            r.RunID,
		GeneratedAt:      r.GeneratedAt,
		TotalEntries:     r.TotalEntries,
		UniquePasswords:  r.UniquePasswords,
		CompromisedCount: len(r.Compromised),
		CompromisedUsers: len(r.CompromisedByUser),
		UsernameReuse:    r.UsernameReuse.Count,
	}
}

// RankChange is the movement of one password in the top passwords ranking.
// A rank of zero means the password was not ranked in that run.
type RankChange struct {
	Password     string `json:"password"`
	PreviousRank int    `json:"previous_rank"`
	CurrentRank  int    `json:"current_rank"`
}

// IsNew reports whether the password entered the ranking.
func (c RankChange) IsNew() bool {
	return c.PreviousRank == 0 && c.CurrentRank > 0
}

// IsDropped reports whether the password left the ranking.
func (c RankChange) IsDropped() bool {
	return c.CurrentRank == 0 && c.PreviousRank > 0
}

// Movement returns how many places the password climbed.
// It is negative when the password fell and zero when it entered or left
// the ranking.
func (c RankChange) Movement() int {
	if c.PreviousRank == 0 || c.CurrentRank == 0 {
		return 0
	}
	return c.PreviousRank - c.CurrentRank
}

// Comparison holds the differences between two reports.
type Comparison struct {
	// Source is the dump of the current report.
	Source string `json:"source"`

	// Previous describes the older run.
	Previous RunSummary `json:"previous"`

	// Current describes the newer run.
	Current RunSummary `json:"current"`

	// TotalEntriesDelta is the change in valid records.
	TotalEntriesDelta int `json:"total_entries_delta"`

	// UniquePasswordsDelta is the change in distinct passwords.
	UniquePasswordsDelta int `json:"unique_passwords_delta"`

	// CompromisedDelta is the change in high value target records.
	CompromisedDelta int `json:"compromised_delta"`

	// NewlyCompromised lists targets present only in the current run.
	NewlyCompromised []string `json:"newly_compromised"`

	// NoLongerPresent lists targets present only in the previous run.
	NoLongerPresent []string `json:"no_longer_present"`

	// RankChanges covers every password ranked in either run: current
	// ranking order first, then passwords that dropped out.
	RankChanges []RankChange `json:"rank_changes"`

	// Direction is the overall exposure trend.
	Direction Direction `json:"direction"`
}

// Compare computes the differences from previous to current.
func Compare(previous, current *model.Report) *Comparison {
	c := &Comparison{
		Source:               current.Source,
		Previous:             summarize(previous),
		Current:              summarize(current),
		TotalEntriesDelta:    current.TotalEntries - previous.TotalEntries,
		UniquePasswordsDelta: current.UniquePasswords - previous.UniquePasswords,
		CompromisedDelta:     len(current.Compromised) - len(previous.Compromised),
		NewlyCompromised:     missingFrom(current.CompromisedByUser, previous.CompromisedByUser),
		NoLongerPresent:      missingFrom(previous.CompromisedByUser, current.CompromisedByUser),
		RankChanges:          rankChanges(previous.TopPasswords, current.TopPasswords),
	}
	c.Direction = direction(c)
	return c
}

// missingFrom returns the keys of a that do not appear in b, in a's order.
func missingFrom(a, b []model.Share[string]) []string {
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		seen[s.Key] = struct{}{}
	}

	missing := make([]string, 0)
	for _, s := range a {
		if _, ok := seen[s.Key]; !ok {
			missing = append(missing, s.Key)
		}
	}
	return missing
}

func rankChanges(previous, current []model.Share[string]) []RankChange {
	previousRank := make(map[string]int, len(previous))
	for i, s := range previous {
		previousRank[s.Key] = i + 1
	}

	changes := make([]RankChange, 0, len(current))
	ranked := make(map[string]struct{}, len(current))
	for i, s := range current {
		ranked[s.Key] = struct{}{}
		changes = append(changes, RankChange{
			Password:     s.Key,
			PreviousRank: previousRank[s.Key],
			CurrentRank:  i + 1,
		})
	}
	for i, s := range previous {
		if _, ok := ranked[s.Key]; ok {
			continue
		}
		changes = append(changes, RankChange{
			Password:     s.Key,
			PreviousRank: i + 1,
		})
	}
	return changes
}

// direction weighs distinct targets first, then target records, then
// username reuse.
func direction(c *Comparison) Direction {
	deltas := []int{
		c.Current.CompromisedUsers - c.Previous.CompromisedUsers,
		c.CompromisedDelta,
		c.Current.UsernameReuse - c.Previous.UsernameReuse,
	}
	for _, d := range deltas {
		switch cmp.Compare(d, 0) {
		case 1:
			return DirectionWorsened
		case -1:
			return DirectionImproved
		}
	}
	if len(c.NewlyCompromised) > 0 {
		return DirectionWorsened
	}
	return DirectionUnchanged
}
