// Command resources-server runs the reference implementation of the
// resources API on a local port. It is the server the conformance suite is
// developed against; everything lives in memory, so a restart starts over
// with an empty collection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/schul-cloud/resources-contract-tests/server"
)

const defaultPort = 8080

func main() {
	var port int
	var verbose bool
	flag.IntVar(&port, "port", 0, fmt.Sprintf("port to listen on (default $PORT or %d)", defaultPort))
	flag.BoolVar(&verbose, "verbose", false, "log every request")
	flag.Parse()

	if port == 0 {
		if env := os.Getenv("PORT"); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				log.Fatalf("invalid PORT value %q", env)
			}
			port = p
		} else {
			port = defaultPort
		}
	}

	srv := server.New(server.Config{Port: port, Verbose: verbose})
	if err := srv.Serve(); err != nil {
		log.Fatalf("server error: %s", err)
	}
}
