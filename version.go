package billchain

// version follows semantic versioning. GitCommit is set at build time with
//   -ldflags "-X github.com/iov-one/billchain.GitCommit=<hash>"
var (
	version   = "v0.1.0-dev"
	GitCommit = ""
)

// Version returns the release and, when known, the commit it was built from.
func Version() string {
	if GitCommit == "" {
		return version
	}
	return version + " " + GitCommit
}
