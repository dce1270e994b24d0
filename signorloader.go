// Package signorloader loads SIGNOR pathway data into NDEx.
package signorloader

// Version of this tool, reported in user agents and network provenance.
const Version = "1.1.0"

// UserAgent identifies this tool in outbound HTTP requests.
func UserAgent() string {
	return "signorloader/" + Version
}
