// Command log_inspect dumps the durable room logs of a mailroom store
// for debugging. Read-only: it never mutates the database it opens.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/olekukonko/tablewriter"
)

type record struct {
	Seq         uint64 `cbor:"seq"`
	Room        string `cbor:"room"`
	ClientID    string `cbor:"client_id"`
	DisplayName string `cbor:"display_name"`
	Content     string `cbor:"content"`
	Kind        string `cbor:"kind"`
	At          int64  `cbor:"at"`
}

func main() {
	dbPath := flag.String("db", "", "Path to the badger store")
	room := flag.String("room", "", "Only dump this room (default: all rooms)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("missing -db path")
	}

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	prefix := "msg:"
	if *room != "" {
		prefix = fmt.Sprintf("msg:%s:", url.QueryEscape(*room))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Seq", "Room", "Kind", "Sender", "Content", "At"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var r record
				if err := cbor.Unmarshal(v, &r); err != nil {
					// Log and keep scanning instead of aborting the dump
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}
				table.Append([]string{
					string(item.Key()),
					fmt.Sprintf("%d", r.Seq),
					r.Room,
					r.Kind,
					r.DisplayName,
					r.Content,
					fmt.Sprintf("%d", r.At),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}
