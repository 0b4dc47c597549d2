package latex

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Compile writes texSource next to outDir and runs pdflatex on it. Returns
// the path of the produced PDF. pdflatex is run twice so references settle.
func Compile(ctx context.Context, logger *zap.Logger, texSource, outDir, baseName string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("latex: create output dir: %w", err)
	}

	texPath := filepath.Join(outDir, baseName+".tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
		return "", fmt.Errorf("latex: write source: %w", err)
	}

	for pass := 1; pass <= 2; pass++ {
		cmd := exec.CommandContext(ctx, "pdflatex",
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory", outDir,
			texPath,
		)
		output, err := cmd.CombinedOutput()
		if err != nil {
			logger.Error("pdflatex failed",
				zap.String("tex", texPath),
				zap.Int("pass", pass),
				zap.String("output", tail(string(output), 2000)),
			)
			return "", fmt.Errorf("latex: pdflatex %s (pass %d): %w", baseName, pass, err)
		}
	}

	return filepath.Join(outDir, baseName+".pdf"), nil
}

// tail keeps the last n bytes of pdflatex output, which is where the error is.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
