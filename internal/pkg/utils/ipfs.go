package utils

import "strings"

const ipfsScheme = "ipfs://"

// DefaultIPFSGateway is the public HTTP gateway used when none is configured.
const DefaultIPFSGateway = "ipfs.io"

// RewriteIPFSURL rewrites an ipfs:// URI to an HTTP gateway URL.
// "ipfs://CID/path" becomes "https://<gateway>/ipfs/CID/path". Any other URI
// passes through unchanged. Some minters prefix the CID with a redundant
// "ipfs/" segment; that is collapsed rather than doubled.
func RewriteIPFSURL(uri string, gateway string) string {
	if !strings.HasPrefix(uri, ipfsScheme) {
		return uri
	}
	if gateway == "" {
		gateway = DefaultIPFSGateway
	}
	rest := strings.TrimPrefix(uri, ipfsScheme)
	rest = strings.TrimPrefix(rest, "ipfs/")
	return "https://" + gateway + "/ipfs/" + rest
}
