package knight

import "testing"

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Shiryu de Dragão"},
		{name: "blank", input: "   ", wantErr: true},
		{name: "symbols only", input: "!!!", wantErr: true},
		{name: "too long", input: string(make([]byte, MaxNameLen+1)), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateName(tc.input)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestKnightURL(t *testing.T) {
	t.Parallel()

	k := Knight{ID: "abcdef12", Name: "Seiya de Pégaso"}
	if got, want := k.URL(), "abc-seiya-de-pegaso"; got != want {
		t.Fatalf("unexpected url: got=%s want=%s", got, want)
	}
}
