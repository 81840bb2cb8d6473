// Package urls provides centralized constants for the URLs printed by the
// CLI, so they can be updated in one place before release.
//
//	import "github.com/muurk/roseday/internal/urls"
//
//	fmt.Printf("Create a key at %s\n", urls.APIKeys("together"))
package urls
