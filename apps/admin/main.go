package main

import (
	"log"
	"os"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
	blobstore "github.com/darasahq/darasa/storage/blob"
	memorydb "github.com/darasahq/darasa/storage/memory"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// operate on the same snapshot the API serves from
	var store blobstore.Store
	var err error
	if conf.Storage.RedisAddr != "" {
		store, err = blobstore.NewRedisStore(conf)
		errAndDie(err)
	} else {
		store = blobstore.NewFileStore(conf.Storage.SnapshotPath)
	}
	db, err := memorydb.Open(store)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(memorydb.NewUserRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
