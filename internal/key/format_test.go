package key

import "testing"

func TestFormatMac(t *testing.T) {
	tokens := Format(Parse("ctrl+shift+s"), PlatformMac)
	want := []string{"⌃", "⇧", "S"}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Label != w {
			t.Errorf("tokens[%d].Label = %q, want %q", i, tokens[i].Label, w)
		}
	}
}

func TestFormatOther(t *testing.T) {
	tokens := Format(Parse("meta+alt+Enter"), PlatformOther)
	want := []Token{
		{Label: "Alt"},
		{Label: "Meta"},
		{Label: "Enter", Wide: true},
	}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Errorf("tokens[%d] = %+v, want %+v", i, tokens[i], w)
		}
	}
}

func TestFormatWideKeys(t *testing.T) {
	for _, combo := range []string{"Space", "Enter", "Backspace", "Delete"} {
		tokens := Format(Parse(combo), PlatformOther)
		if len(tokens) != 1 || !tokens[0].Wide {
			t.Errorf("Format(%q) should flag a wide key, got %+v", combo, tokens)
		}
	}
	tokens := Format(Parse("k"), PlatformOther)
	if len(tokens) != 1 || tokens[0].Wide {
		t.Errorf("letter key should not be wide, got %+v", tokens)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		combo    string
		platform Platform
		want     string
	}{
		{"ctrl+shift+s", PlatformOther, "Ctrl+Shift+S"},
		{"ctrl+shift+s", PlatformMac, "⌃⇧S"},
		{"meta+Space", PlatformOther, "Meta+Space"},
		{"garbage+", PlatformOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			if got := Display(tt.combo, tt.platform); got != tt.want {
				t.Errorf("Display(%q) = %q, want %q", tt.combo, got, tt.want)
			}
		})
	}
}
