// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"taxoncheck/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections ahead of the shared blocks.
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s – genome taxonomy reconciliation toolkit\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		// Tool-specific additions
		if extra != nil {
			extra(out, def)
		}

		// Shared blocks
		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -C, --config file           YAML run configuration (flags override)")
		fmt.Fprintln(out, "      --metadata file         Current-release genome metadata TSV [*]")
		fmt.Fprintln(out, "      --genome-paths file     TSV mapping accessions to genome directories")

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintln(out, "  -o, --output-dir dir        Directory for report files (or first positional) [*]")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress informational logging [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
