// Package platform identifies the application platform or storefront a
// process was launched from, based on its installation path.
package platform

import "strings"

// Tag identifies a known application platform.
type Tag int

// Known platforms.
const (
	None Tag = iota
	Steam
	Epic
	GOG
	BattleNet
	Xbox
)

// String returns a string representation of the tag.
func (t Tag) String() string {
	switch t {
	case Steam:
		return "steam"
	case Epic:
		return "epic"
	case GOG:
		return "gog"
	case BattleNet:
		return "battle.net"
	case Xbox:
		return "xbox"
	default:
		return "none"
	}
}

// fragments maps well-known installation path fragments to tags. The
// first match wins, so more specific fragments come first.
var fragments = []struct {
	fragment string
	tag      Tag
}{
	{`\steamapps\`, Steam},
	{`\steam\`, Steam},
	{`\epic games\`, Epic},
	{`\gog galaxy\games\`, GOG},
	{`\gog games\`, GOG},
	{`\battle.net\`, BattleNet},
	{`\windowsapps\`, Xbox},
	{`\xboxgames\`, Xbox},
}

// Detect returns the platform tag for a process with the given
// executable path. It is resolved once at process creation; a process
// cannot change platforms after launch.
func Detect(path string) Tag {
	if path == "" {
		return None
	}
	path = strings.ToLower(path)
	for _, f := range fragments {
		if strings.Contains(path, f.fragment) {
			return f.tag
		}
	}
	return None
}
