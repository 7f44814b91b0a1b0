// Package embedded links every playlist dialect into the binary. Importing
// it runs each dialect's init, which adds the dialect to the registry in
// core/dialect.
package embedded

import (
	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"

	_ "github.com/FocuswithJustin/JuniperPlaylist/internal/formats/asx"
	_ "github.com/FocuswithJustin/JuniperPlaylist/internal/formats/hypetape"
	_ "github.com/FocuswithJustin/JuniperPlaylist/internal/formats/rmp"
	_ "github.com/FocuswithJustin/JuniperPlaylist/internal/formats/smil"
	_ "github.com/FocuswithJustin/JuniperPlaylist/internal/formats/wpl"
)

// IsInitialized reports whether the dialects are registered.
func IsInitialized() bool {
	return len(dialect.Names()) > 0
}

// DialectCount returns the number of registered dialects.
func DialectCount() int {
	return len(dialect.Names())
}
