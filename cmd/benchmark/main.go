package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/randomgen"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
	"gitlab.com/dirk.krummacker/contact-book/internal/store"
)

// Usage example on the command line:
// > go run main.go
// > go run main.go -dir=/tmp
//
// Prints the average duration in microseconds of each operation for growing numbers of
// contacts. Every run works on a fresh database file that is removed afterwards.
func main() {
	dirPtr := flag.String("dir", os.TempDir(), "directory for the scratch database")
	flag.Parse()

	fmt.Println()
	fmt.Println("  Elements       ADD    UPDATE       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{100, 500, 1000, 5000, 10000}
	for _, loops := range sizes {
		if err := runRound(*dirPtr, loops); err != nil {
			fmt.Println("benchmark failed", err)
			panic(err)
		}
		fmt.Println()
	}
}

func runRound(dir string, loops int) error {
	file := filepath.Join(dir, fmt.Sprintf("contacts-benchmark-%d.db", time.Now().UnixNano()))
	defer os.Remove(file)

	st, err := store.Open(config.Database{Driver: config.DriverSQLite, File: file}, logger.Discard())
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Initialize(); err != nil {
		return err
	}
	contacts := service.New(st, logger.Discard())

	fmt.Printf("%10d", loops)
	ids := make([]int64, 0, loops)
	{
		// ADD
		var duration int64
		for i := 0; i < loops; i++ {
			name := randomgen.Name()
			phone := fmt.Sprintf("+49%010d", i)
			before := time.Now().UnixNano()
			contact, err := contacts.Add(name, phone, randomgen.Email(name), randomgen.Address())
			duration += time.Now().UnixNano() - before
			if err != nil {
				return err
			}
			ids = append(ids, contact.Id)
		}
		fmt.Printf("%10d", duration/int64(loops*1000))
	}
	{
		// UPDATE
		f := func(id int64) error {
			address := randomgen.Address()
			_, err := contacts.Update(id, model.ContactUpdate{Address: &address})
			return err
		}
		if err := callInLoop(ids, f); err != nil {
			return err
		}
	}
	{
		// GET
		f := func(id int64) error {
			_, err := contacts.Get(id)
			return err
		}
		if err := callInLoop(ids, f); err != nil {
			return err
		}
	}
	{
		// DELETE
		if err := callInLoop(ids, contacts.Delete); err != nil {
			return err
		}
	}
	return nil
}

// callInLoop calls f once for every id in random order and prints the average duration.
func callInLoop(ids []int64, f func(id int64) error) error {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		before := time.Now().UnixNano()
		err := f(id)
		duration += time.Now().UnixNano() - before
		if err != nil {
			return err
		}
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
	return nil
}
