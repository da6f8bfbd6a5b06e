// accountctl provisions game accounts from the command line.
//
// Usage:
//
//	accountctl -login someone -password secret [-privilege 3]
//
// The client never sends the raw password on the wire; it sends its MD5
// digest. The same digest is what gets bcrypt-hashed at rest, so the tool
// computes it here before handing off to the repository.
package main

import (
	"context"
	"crypto/md5"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Micenas/R1EMU/internal/barrack"
	"github.com/Micenas/R1EMU/internal/config"
	"github.com/Micenas/R1EMU/internal/persist"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath   = flag.String("config", "config/barrack.toml", "path to server config")
		login     = flag.String("login", "", "account login (required)")
		password  = flag.String("password", "", "account password (required)")
		privilege = flag.Int("privilege", int(barrack.PrivilegePlayer), "privilege level (0=admin, 2=gm, 3=player)")
	)
	flag.Parse()

	if *login == "" || *password == "" {
		flag.Usage()
		return fmt.Errorf("login and password are required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	digest := md5.Sum([]byte(*password))
	accountID, err := persist.NewAccountRepo(db).Create(ctx, *login, digest[:], barrack.Privilege(*privilege))
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	fmt.Printf("account %q created (id=%d)\n", *login, accountID)
	return nil
}
