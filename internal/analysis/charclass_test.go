package analysis

import "testing"

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pwd  string
		want string
	}{
		{pwd: "Ab1!", want: "?u?l?d?s"},
		{pwd: "password", want: "?l?l?l?l?l?l?l?l"},
		{pwd: "Été", want: "?u?l?l"},
		{pwd: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			t.Parallel()
			if got := Mask(tt.pwd); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.pwd, got, tt.want)
			}
		})
	}
}

func TestComposition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pwd  string
		want string
	}{
		{pwd: "Summer2024!", want: "lower+upper+digit+special"},
		{pwd: "abc", want: "lower"},
		{pwd: "123456", want: "digit"},
		{pwd: "pass123", want: "lower+digit"},
		{pwd: "!!", want: "special"},
		{pwd: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			t.Parallel()
			if got := Composition(tt.pwd); got != tt.want {
				t.Errorf("Composition(%q) = %q, want %q", tt.pwd, got, tt.want)
			}
		})
	}
}

func TestContainsUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		username string
		pwd      string
		want     bool
	}{
		{username: "alice", pwd: "Alice2024", want: true},
		{username: "Bob", pwd: "ilovebob!", want: true},
		{username: "bob", pwd: "hunter2", want: false},
		{username: "al", pwd: "al123", want: false},
		{username: "", pwd: "anything", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.username+"/"+tt.pwd, func(t *testing.T) {
			t.Parallel()
			if got := ContainsUsername(tt.username, tt.pwd); got != tt.want {
				t.Errorf("ContainsUsername(%q, %q) = %v, want %v", tt.username, tt.pwd, got, tt.want)
			}
		})
	}
}
