package analysis

import "testing"

func TestRootWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pwd  string
		want string
	}{
		{pwd: "Summer2024!", want: "summer"},
		{pwd: "1234", want: ""},
		{pwd: "!abc", want: ""},
		{pwd: "abc", want: "abc"},
		{pwd: "P@ssw0rd", want: "p"},
		{pwd: "my_pass1", want: "my_pass"},
		{pwd: "hello world", want: "hello"},
		{pwd: "ÉtÉ2020", want: "été"},
		{pwd: "Welcome", want: "welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			t.Parallel()
			if got := RootWord(tt.pwd); got != tt.want {
				t.Errorf("RootWord(%q) = %q, want %q", tt.pwd, got, tt.want)
			}
		})
	}
}
