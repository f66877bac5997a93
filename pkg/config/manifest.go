package config

import (
	"os"
	"sort"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

// CastleSource is where a declared castle is cloned from
type CastleSource struct {
	URL string `toml:"url"`
}

// CastleManifest is the content of a castle's home.toml:
//
//	[castles.emacs]
//	url = "https://example.com/dot-emacs.git"
type CastleManifest struct {
	Castles map[string]CastleSource `toml:"castles"`
}

// DeclaredCastle is one entry of a CastleManifest
type DeclaredCastle struct {
	Name string
	URL  string
}

// ParseCastleManifest parses home.toml content. Unknown tables are
// ignored; a declared castle without url is an error.
func ParseCastleManifest(data []byte) (*CastleManifest, error) {
	var m CastleManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "castle manifest is not valid TOML")
	}

	for name, src := range m.Castles {
		if src.URL == "" {
			return nil, errors.Newf(errors.ErrConfigParse, "castle %s declares no url", name).
				WithDetail("castle", name)
		}
	}
	return &m, nil
}

// LoadCastleManifest reads and parses the manifest at path. A missing file
// is an empty manifest.
func LoadCastleManifest(path string) (*CastleManifest, error) {
	logger := logging.GetLogger("config.manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No castle manifest")
			return &CastleManifest{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read castle manifest %s", path).
			WithDetail("path", path)
	}

	m, err := ParseCastleManifest(data)
	if err != nil {
		if herr, ok := err.(*errors.HeimwehError); ok {
			herr.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().Str("path", path).Int("castles", len(m.Castles)).Msg("Castle manifest loaded")
	return m, nil
}

// Declared returns the declared castles sorted by name
func (m *CastleManifest) Declared() []DeclaredCastle {
	declared := make([]DeclaredCastle, 0, len(m.Castles))
	for name, src := range m.Castles {
		declared = append(declared, DeclaredCastle{Name: name, URL: src.URL})
	}
	sort.Slice(declared, func(i, j int) bool {
		return declared[i].Name < declared[j].Name
	})
	return declared
}
