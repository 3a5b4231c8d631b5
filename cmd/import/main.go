package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
	"gitlab.com/dirk.krummacker/contact-book/internal/store"
)

// Usage example on the command line:
// > go run main.go -file=../../scripts/contacts.csv
//
// Every line holds name,phone,email,address. Email and address may be empty or missing. Lines
// starting with '#' are skipped. A contact whose phone number is already stored is not added
// again.
func main() {
	filePtr := flag.String("file", "contacts.csv", "the csv file to import")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Log)

	st, err := store.Open(cfg.Database, log)
	if err != nil {
		panic(err)
	}
	defer st.Close()
	if err := st.Initialize(); err != nil {
		panic(err)
	}

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	added, skipped, failed := importContacts(service.New(st, log), readFile, os.Stderr)
	fmt.Printf("added %d, skipped %d, failed %d\n", added, skipped, failed)
}

// adder is the part of the contact service the import needs.
type adder interface {
	Add(name, phone, email, address string) (model.Contact, error)
}

// importContacts adds every record of the csv input. Records with a phone number that is already
// stored are counted as skipped, invalid records as failed and reported to errOut.
func importContacts(contacts adder, in io.Reader, errOut io.Writer) (added, skipped, failed int) {
	reader := csv.NewReader(in)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return added, skipped, failed
		}
		if err != nil {
			fmt.Fprintln(errOut, err)
			failed++
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return added, skipped, failed
			}
			continue
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			fmt.Fprintf(errOut, "line %d: expected at least name and phone\n", line)
			failed++
			continue
		}
		fields := make([]string, 4)
		for i := 0; i < len(record) && i < 4; i++ {
			fields[i] = strings.TrimSpace(record[i])
		}
		_, err = contacts.Add(fields[0], fields[1], fields[2], fields[3])
		switch {
		case err == nil:
			added++
		case errors.Is(err, service.ErrDuplicatePhone):
			skipped++
		default:
			fmt.Fprintf(errOut, "line %d: %v\n", line, err)
			failed++
		}
	}
}
