package platform

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Tag
	}{
		{"steam-library", `C:\Program Files (x86)\Steam\steamapps\common\Hades\Hades.exe`, Steam},
		{"steam-client", `C:\Program Files (x86)\Steam\steam.exe`, Steam},
		{"epic", `D:\Epic Games\Control\Control_DX12.exe`, Epic},
		{"gog", `C:\Program Files\GOG Galaxy\Games\Cyberpunk 2077\bin\x64\Cyberpunk2077.exe`, GOG},
		{"battlenet", `C:\Program Files (x86)\Battle.net\Battle.net.exe`, BattleNet},
		{"xbox", `C:\Program Files\WindowsApps\Microsoft.Halo_1.0\halo.exe`, Xbox},
		{"case-insensitive", `c:\program files (x86)\STEAM\steamapps\common\x\x.exe`, Steam},
		{"plain", `C:\Windows\notepad.exe`, None},
		{"empty", "", None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.path); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	if got := Steam.String(); got != "steam" {
		t.Errorf("Steam.String() = %q", got)
	}
	if got := None.String(); got != "none" {
		t.Errorf("None.String() = %q", got)
	}
	if got := Tag(99).String(); got != "none" {
		t.Errorf("Tag(99).String() = %q", got)
	}
}
