// Package blocklist holds the immutable set of process names suppressed
// during work phases.
package blocklist

import (
	"sort"
	"strings"
)

// Catalog is the built-in list of blocked process names.
var Catalog = []string{
	// Browsers
	"chrome", "msedge", "firefox", "opera", "brave", "vivaldi",
	// Game launchers and stores
	"steam", "epicgameslauncher", "riotclientservices", "leagueclient", "valorant",
	"battle.net", "upc", "origin", "eadesktop", "minecraftlauncher",
}

// BlockList is a case-insensitive, exact-match set of process names.
// The zero value blocks nothing.
type BlockList struct {
	names map[string]struct{}
}

// New builds a block list from the given names.
func New(names ...string) BlockList {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		normalized := Normalize(name)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return BlockList{names: set}
}

// Default returns a block list populated from Catalog.
func Default() BlockList {
	return New(Catalog...)
}

// Normalize lower-cases a process name and drops a Windows ".exe" suffix.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".exe")
}

// Contains reports whether the process name is blocked.
func (list BlockList) Contains(name string) bool {
	if len(list.names) == 0 {
		return false
	}
	_, ok := list.names[Normalize(name)]
	return ok
}

// Len returns the number of distinct names.
func (list BlockList) Len() int {
	return len(list.names)
}

// Names returns the blocked names in sorted order.
func (list BlockList) Names() []string {
	names := make([]string, 0, len(list.names))
	for name := range list.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
