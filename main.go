package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
)

var (
	port        = flag.String("port", "8080", "port number")
	dir         = flag.String("dir", ".", "document root")
	bind        = flag.String("bind", "127.0.1.1", "address to listen on")
	vhost       = flag.Bool("vhost", os.Getenv("HOST_NOT_DEFINED") != "1", "serve <dir>/<Host>/ per virtual host")
	idleTimeout = flag.Duration("timeout", defaultIdleTimeout, "idle timeout before each request")
	maxRequests = flag.Int("max-requests", defaultMaxRequests, "requests served per connection")
	quiet       = flag.Bool("q", false, "do not log")
)

func handle(conn net.Conn, cfg *Config) {
	session := NewSession(conn, cfg)
	session.Serve() // session takes the ownership of |conn|
}

func serve(cfg *Config) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	fmt.Printf("listening on address: http://%s\n", ln.Addr())
	return acceptLoop(ln, cfg)
}

// acceptLoop returns once the listener is closed.
func acceptLoop(ln net.Listener, cfg *Config) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Printf("accept error: %v", err)
			continue
		}
		go handle(conn, cfg)
	}
}

// configFromFlags also accepts the positional form: [port] [directory].
func configFromFlags(args []string) (*Config, error) {
	cfg := DefaultConfig()
	p, root := *port, *dir
	if len(args) > 0 {
		p = args[0]
	}
	if len(args) > 1 {
		root = args[1]
	}
	if len(args) > 2 {
		return nil, fmt.Errorf("too many arguments")
	}
	if _, err := strconv.ParseUint(p, 10, 16); err != nil {
		return nil, fmt.Errorf("invalid port %q", p)
	}
	cfg.Addr = net.JoinHostPort(*bind, p)
	cfg.Root = root
	cfg.VirtualHosts = *vhost
	cfg.IdleTimeout = *idleTimeout
	cfg.MaxRequests = *maxRequests
	return cfg, cfg.validate()
}

func main() {
	flag.Parse()
	if *quiet {
		log.SetOutput(io.Discard)
	}
	cfg, err := configFromFlags(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: http-server [flags] [port] [directory]\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err := serve(cfg); err != nil {
		log.Fatal(err)
	}
}
