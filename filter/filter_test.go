package filter

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		exe  string
		path string
		want Class
	}{
		{"shell", "explorer.exe", `C:\Windows\explorer.exe`, DesktopShell},
		{"shell-case", "Explorer.EXE", `C:\Windows\explorer.exe`, DesktopShell},
		{"session", "csrss.exe", `C:\Windows\System32\csrss.exe`, Restricted},
		{"host", "svchost.exe", `C:\Windows\System32\svchost.exe`, Restricted},
		{"game", "steam.exe", `C:\Program Files (x86)\Steam\steam.exe`, Allowed},
		{"game-case", "STEAM.exe", `C:\Program Files (x86)\Steam\steam.exe`, Allowed},
		{"self", "attentive.exe", `C:\Program Files\SCJ\attentive\attentive.exe`, SelfProcess},
		{"empty-path", "steam.exe", "", Restricted},
		{"empty-path-shell", "explorer.exe", "", Restricted},
		{"empty-both", "", "", Restricted},
		{"name-from-path", "", `C:\Windows\System32\dwm.exe`, Restricted},
		{"uwp-frame", "ApplicationFrameHost.exe", `C:\Windows\System32\ApplicationFrameHost.exe`, Restricted},
		{"ordinary", "notepad.exe", `C:\Windows\notepad.exe`, Allowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.exe, tt.path); got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.exe, tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Classify("notepad.exe", `C:\Windows\notepad.exe`); got != Allowed {
			t.Fatalf("classification changed between calls: %v", got)
		}
	}
}

func TestClassString(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{Allowed, "allowed"},
		{Restricted, "restricted"},
		{DesktopShell, "desktop-shell"},
		{SelfProcess, "self"},
		{Class(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("Class(%d).String() = %q, want %q", int(tt.class), got, tt.want)
		}
	}
}
