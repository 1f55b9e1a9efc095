//go:build generate

package main

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/josephspurrier/goversioninfo"
)

func main() {
	buildVersionInfo()
}

func buildVersionInfo() {
	major, minor, patch, build := splitVersion(Version)
	fileVersion := goversioninfo.FileVersion{
		Major: major,
		Minor: minor,
		Patch: patch,
		Build: build,
	}
	vi := goversioninfo.VersionInfo{
		IconPath:     "icon.ico",
		ManifestPath: "attentive.manifest",
		FixedFileInfo: goversioninfo.FixedFileInfo{
			FileVersion:    fileVersion,
			ProductVersion: fileVersion,
			FileFlagsMask:  "3f",
			FileFlags:      "00",
			FileOS:         "040004",
			FileType:       "01",
			FileSubType:    "00",
		},
		StringFileInfo: goversioninfo.StringFileInfo{
			CompanyName:      "SCJ Alliance",
			FileDescription:  "Attentive",
			FileVersion:      Version,
			OriginalFilename: "attentive.exe",
			ProductName:      "Attentive",
			ProductVersion:   Version,
		},
		VarFileInfo: goversioninfo.VarFileInfo{
			Translation: goversioninfo.Translation{
				LangID:    goversioninfo.LngUSEnglish,
				CharsetID: goversioninfo.CsUnicode,
			},
		},
	}
	vi.Build()
	vi.Walk()
	vi.WriteSyso("attentive.syso", runtime.GOARCH)
}

func splitVersion(version string) (major, minor, patch, build int) {
	parts := strings.Split(version, ".")
	switch len(parts) {
	case 4:
		if val, err := strconv.Atoi(parts[3]); err == nil {
			build = val
		}
		fallthrough
	case 3:
		if val, err := strconv.Atoi(parts[2]); err == nil {
			patch = val
		}
		fallthrough
	case 2:
		if val, err := strconv.Atoi(parts[1]); err == nil {
			minor = val
		}
		fallthrough
	case 1:
		if val, err := strconv.Atoi(parts[0]); err == nil {
			major = val
		}
	}
	return
}
