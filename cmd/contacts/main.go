package main

import (
	"fmt"
	"log/slog"
	"os"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
	"gitlab.com/dirk.krummacker/contact-book/internal/menu"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
	"gitlab.com/dirk.krummacker/contact-book/internal/store"
)

// Usage example on the command line:
// > go run main.go
// > DBFILE=/tmp/contacts.db LOG_LEVEL=debug go run main.go
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not read configuration:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	st, err := store.Open(cfg.Database, log)
	if err != nil {
		log.Error("could not open contacts database", "err", err)
		os.Exit(1)
	}
	if err := run(st, log); err != nil {
		log.Error("contact book stopped", "err", err)
	}
	st.Close()
}

func run(st *store.Store, log *slog.Logger) error {
	if err := st.Initialize(); err != nil {
		return err
	}
	return menu.New(service.New(st, log), os.Stdin, os.Stdout).Run()
}
