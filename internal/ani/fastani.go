// internal/ani/fastani.go
package ani

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// FastANIRunner shells out to a fastANI binary for each pair. The output
// file format is one line per resolved pair:
//
//	query<TAB>ref<TAB>ANI<TAB>mapped fragments<TAB>total fragments
//
// AF is derived as mapped/total. An empty output file means the genomes
// share no alignable content; that is a successful computation with zero
// identity, not a failure.
type FastANIRunner struct {
	// Exec is the binary to invoke; defaults to "fastANI".
	Exec string
}

// Compute implements Runner.
func (r *FastANIRunner) Compute(ctx context.Context, queryFile, refFile string) (Result, error) {
	execName := r.Exec
	if execName == "" {
		execName = "fastANI"
	}

	out, err := os.CreateTemp("", "fastani-*.tsv")
	if err != nil {
		return Result{}, fmt.Errorf("fastani: create output file: %w", err)
	}
	outPath := out.Name()
	_ = out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, execName, "-q", queryFile, "-r", refFile, "-o", outPath)
	if msg, err := cmd.CombinedOutput(); err != nil {
		return Result{}, fmt.Errorf("fastani: %w: %s", err, strings.TrimSpace(string(msg)))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("fastani: read output: %w", err)
	}
	return parseFastANI(string(data))
}

func parseFastANI(out string) (Result, error) {
	line := strings.TrimSpace(out)
	if line == "" {
		// No alignable fraction between the genomes.
		return Result{}, nil
	}
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Result{}, fmt.Errorf("fastani: malformed output line %q", line)
	}

	aniVal, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Result{}, fmt.Errorf("fastani: bad ANI value %q", fields[2])
	}
	mapped, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Result{}, fmt.Errorf("fastani: bad mapped-fragment count %q", fields[3])
	}
	total, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Result{}, fmt.Errorf("fastani: bad total-fragment count %q", fields[4])
	}

	// fastANI reports identity as a percentage; normalize to a fraction.
	res := Result{ANI: aniVal / 100}
	if total > 0 {
		res.AF = mapped / total
	}
	return res, nil
}
