// Package apikey generates human-readable keys for the server API. Keys are
// meant to be generated once by the operator and placed in the config file or
// the SAMACHAR_API_KEY environment variable.
package apikey

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// words is a list of common English words, each at least 6 letters, used to
// build memorable API keys.
var words = []string{
	"anchor", "autumn", "basket", "beacon", "bridge", "bright",
	"candle", "canyon", "carbon", "castle", "cipher", "circle",
	"copper", "cosmos", "cotton", "desert", "divine", "dragon",
	"ember", "falcon", "forest", "garden", "glacier", "granite",
	"harbor", "hollow", "island", "jungle", "lantern", "legend",
	"lumber", "marble", "meadow", "mirror", "monsoon", "nectar",
	"orbit", "orchid", "pebble", "pillar", "planet", "prairie",
	"quartz", "raven", "ribbon", "river", "saffron", "shadow",
	"silver", "spark", "spring", "summit", "temple", "thunder",
	"timber", "tunnel", "valley", "velvet", "voyage", "willow",
	"winter", "zenith",
}

// Generate creates a key of the form woRd-word-wOrd-word-123456: four
// distinct random words, a handful of randomly uppercased letters, and a
// random 6-digit suffix.
func Generate() (string, error) {
	chosen := make([][]rune, 0, 4)
	used := make(map[int]bool)
	for len(chosen) < 4 {
		idx, err := randInt(len(words))
		if err != nil {
			return "", fmt.Errorf("pick word: %w", err)
		}
		if used[idx] {
			continue
		}
		used[idx] = true
		chosen = append(chosen, []rune(words[idx]))
	}

	// Uppercase one random letter in two of the words.
	for i := 0; i < 2; i++ {
		w, err := randInt(len(chosen))
		if err != nil {
			return "", fmt.Errorf("pick word to capitalize: %w", err)
		}
		p, err := randInt(len(chosen[w]))
		if err != nil {
			return "", fmt.Errorf("pick letter to capitalize: %w", err)
		}
		chosen[w][p] = unicode.ToUpper(chosen[w][p])
	}

	parts := make([]string, 0, 5)
	for _, runes := range chosen {
		parts = append(parts, string(runes))
	}

	n, err := randInt(900000)
	if err != nil {
		return "", fmt.Errorf("pick suffix: %w", err)
	}
	parts = append(parts, fmt.Sprintf("%d", n+100000))

	return strings.Join(parts, "-"), nil
}

func randInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
