package model

// Record is one credential parsed from a dump line.
// Records are never modified after the loader creates them.
type Record struct {
	// Username is the first colon-delimited field of the line.
	Username string `json:"username"`

	// Password is the third colon-delimited field of the line. Never empty.
	Password string `json:"password"`
}

// Corpus is the ordered sequence of records loaded from one credential dump.
type Corpus struct {
	records []Record
}

// NewCorpus creates a Corpus holding a copy of the given records.
func NewCorpus(records []Record) *Corpus {
	c := &Corpus{records: make([]Record, len(records))}
	copy(c.records, records)
	return c
}

// Records returns the records in load order.
// The returned slice must not be modified.
func (c *Corpus) Records() []Record {
	if c == nil {
		return nil
	}
	return c.records
}

// TotalCount returns the number of records in the corpus.
func (c *Corpus) TotalCount() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Passwords returns the password column in load order.
func (c *Corpus) Passwords() []string {
	passwords := make([]string, c.TotalCount())
	for i, r := range c.Records() {
		passwords[i] = r.Password
	}
	return passwords
}

// UniquePasswords returns the number of distinct password values.
func (c *Corpus) UniquePasswords() int {
	seen := make(map[string]struct{}, c.TotalCount())
	for _, r := range c.Records() {
		seen[r.Password] = struct{}{}
	}
	return len(seen)
}

// TargetSet is a set of high value target usernames.
// It only answers membership questions.
type TargetSet struct {
	members map[string]struct{}
}

// NewTargetSet creates a TargetSet from the given usernames.
func NewTargetSet(usernames ...string) TargetSet {
	members := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		members[u] = struct{}{}
	}
	return TargetSet{members: members}
}

// Contains reports whether username is a high value target.
func (s TargetSet) Contains(username string) bool {
	_, ok := s.members[username]
	return ok
}

// Len returns the number of distinct usernames in the set.
func (s TargetSet) Len() int {
	return len(s.members)
}

// CompromisedTarget marks one dump record whose username is a high value target.
// A username with several records yields several CompromisedTarget values.
type CompromisedTarget struct {
	Username string `json:"username"`
}
