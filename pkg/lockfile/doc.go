// Package lockfile finds packages that a lock file resolves to more than one
// version.
//
// The package understands the lock files written by npm (package-lock.json),
// pnpm (pnpm-lock.yaml, lockfile v6 and v9), Yarn (yarn.lock, classic and
// berry) and Bun (bun.lock). Input is either an already parsed JSON object or
// the raw text of the file; text that starts with "{" is parsed leniently, so
// comments and trailing commas are accepted.
//
// # Usage
//
//	report, err := lockfile.FindDuplicatesIn(string(data))
//	if err != nil {
//	    return err
//	}
//	for _, name := range report.Names() {
//	    fmt.Println(name, report[name])
//	}
//
// Malformed entries are skipped rather than reported. The only error returned
// is *InvalidInputKindError, when the input is neither an object nor text.
//
// The package performs no I/O.
package lockfile
