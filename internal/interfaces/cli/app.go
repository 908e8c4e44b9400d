package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/ledger-recon/internal/bootstrap"
	"github.com/jhoicas/ledger-recon/pkg/config"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// Open carga la configuración y arma las dependencias. Los logs van a stderr para que
// stdout quede solo con el reporte.
func Open(ctx context.Context, component string) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		Out:   os.Stderr,
	}).Named(component)
	return bootstrap.New(ctx, cfg, log)
}

// SplitIDs separa una lista de IDs por comas, sin vacíos.
func SplitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WriteFile escribe un export generado (xlsx/pdf) y avisa por stderr.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "archivo generado: %s (%d bytes)\n", path, len(data))
	return nil
}

// Códigos de salida de los comandos.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Failf imprime el error en w y devuelve ExitError. Los comandos lo retornan desde run y
// solo main llama a os.Exit, después de que corrieron los defer (pool, Redis).
func Failf(w io.Writer, format string, args ...any) int {
	fmt.Fprintf(w, format+"\n", args...)
	return ExitError
}
