package model

import "testing"

func TestCorpus(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Username: "alice", Password: "x1"},
		{Username: "alice", Password: "x2"},
		{Username: "bob", Password: "x1"},
	}
	c := NewCorpus(records)

	t.Run("counts records", func(t *testing.T) {
		t.Parallel()
		if c.TotalCount() != 3 {
			t.Errorf("expected 3 records, got %d", c.TotalCount())
		}
	})

	t.Run("counts distinct passwords", func(t *testing.T) {
		t.Parallel()
		if c.UniquePasswords() != 2 {
			t.Errorf("expected 2 unique passwords, got %d", c.UniquePasswords())
		}
	})

	t.Run("keeps a private copy of the records", func(t *testing.T) {
		t.Parallel()
		local := []Record{{Username: "carol", Password: "p"}}
		cc := NewCorpus(local)
		local[0].Password = "changed"
		if cc.Records()[0].Password != "p" {
			t.Error("corpus records changed after the caller's slice was modified")
		}
	})

	t.Run("nil corpus is empty", func(t *testing.T) {
		t.Parallel()
		var nilCorpus *Corpus
		if nilCorpus.TotalCount() != 0 {
			t.Error("expected nil corpus to be empty")
		}
		if len(nilCorpus.Passwords()) != 0 {
			t.Error("expected no passwords from nil corpus")
		}
	})
}

func TestTargetSet(t *testing.T) {
	t.Parallel()

	s := NewTargetSet("alice", "root", "alice")

	if s.Len() != 2 {
		t.Errorf("expected 2 members, got %d", s.Len())
	}
	if !s.Contains("alice") {
		t.Error("expected alice to be a target")
	}
	if s.Contains("Alice") {
		t.Error("membership must be case sensitive")
	}

	var empty TargetSet
	if empty.Contains("alice") {
		t.Error("zero TargetSet must not contain anything")
	}
}
