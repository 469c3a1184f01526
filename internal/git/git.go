// Package git provides the narrow repository capability surface the
// stacking engines consume, implemented on top of the git CLI.
//
// All shell-to-git interactions go through this package.
package git
