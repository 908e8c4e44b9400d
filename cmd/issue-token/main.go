// issue-token emite un token de operador firmado con JWT_SECRET, para usar la API
// desde scripts internos sin pasar por el proveedor de identidad.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/ledger-recon/internal/interfaces/cli"
	"github.com/jhoicas/ledger-recon/pkg/config"
	"github.com/jhoicas/ledger-recon/pkg/jwt"
)

func main() {
	os.Exit(run())
}

func run() int {
	userID := flag.String("user", "", "Required: operator user id.")
	companyID := flag.String("company", "", "Required: company id the token is scoped to.")
	role := flag.String("role", jwt.RoleAuditor, "Role: admin, auditor or operator.")
	minutes := flag.Int("exp", 0, "Optional: expiration in minutes (defaults to JWT_EXPIRATION_MINUTES).")
	flag.Parse()

	if strings.TrimSpace(*userID) == "" || strings.TrimSpace(*companyID) == "" {
		flag.Usage()
		return cli.ExitUsage
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleAuditor, jwt.RoleOperator:
	default:
		return cli.Failf(os.Stderr, "rol inválido: %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Failf(os.Stderr, "cargar configuración: %v", err)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *userID, *companyID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		return cli.Failf(os.Stderr, "emitir token: %v", err)
	}
	fmt.Println(token)
	return cli.ExitOK
}
