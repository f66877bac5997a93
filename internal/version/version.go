package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/heimweh/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/heimweh/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/heimweh/internal/version.Date={{.Date}}
)

// String returns the one line version summary
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
