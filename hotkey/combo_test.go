package hotkey

import "testing"

func TestParseCombo(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		mods    int
		wantErr bool
	}{
		{name: "single key", in: "space"},
		{name: "modifier combo", in: "ctrl+shift+space", mods: 2},
		{name: "mixed case and spaces", in: " Ctrl + S ", mods: 1},
		{name: "unknown token", in: "ctrl+bogus", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "only separators", in: "++", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, err := ParseCombo(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCombo(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCombo(%q): %v", tt.in, err)
			}
			if len(combo.Modifiers) != tt.mods {
				t.Fatalf("modifiers = %d, want %d", len(combo.Modifiers), tt.mods)
			}
			if !combo.contains(combo.Primary) {
				t.Fatal("combo does not contain its own primary key")
			}
		})
	}
}
