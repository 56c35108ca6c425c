package stablecoin

import "strconv"

// Release of the stablecoin application, reported by abci Info.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is filled in at build time:
//
//	go build -ldflags "-X github.com/iov-one/stablecoin.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	v := "v" + strconv.Itoa(Maj) + "." + strconv.Itoa(Min) + "." + strconv.Itoa(Fix) + Suffix
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
