// Package updater holds the passes that clean up a freshly converted
// network before upload. Each pass reports per-element problems as issue
// strings instead of failing the whole network.
package updater

import (
	"context"

	"github.com/ndexcontent/signorloader/internal/network"
)

// Updater is a single in-place pass over a network.
type Updater interface {
	// Description identifies the pass in issue reports.
	Description() string

	// Update mutates the network and returns any issues found.
	Update(ctx context.Context, net *network.Network) []string
}

const nilNetworkIssue = "network is nil"
