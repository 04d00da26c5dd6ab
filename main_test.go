package main

import (
	"errors"
	"net"
	"testing"
	"time"
)

func TestConfigFromFlags(t *testing.T) {
	cfg, err := configFromFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "127.0.1.1:8080", cfg.Addr)
	ExpectEqual(t, ".", cfg.Root)
	if cfg.IdleTimeout != 10*time.Second || cfg.MaxRequests != 100 {
		t.Errorf("unexpected limits %v %d", cfg.IdleTimeout, cfg.MaxRequests)
	}

	cfg, err = configFromFlags([]string{"9000", "/srv/www"})
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "127.0.1.1:9000", cfg.Addr)
	ExpectEqual(t, "/srv/www", cfg.Root)
	ExpectEqual(t, "9000", cfg.listenPort())

	checkErr := func(args ...string) {
		t.Helper()
		if _, err := configFromFlags(args); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
	checkErr("http")
	checkErr("70000")
	checkErr("80", "/srv", "extra")
	checkErr("80", "")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	cfg.IdleTimeout = 0
	if cfg.validate() == nil {
		t.Error("zero timeout accepted")
	}
	cfg = DefaultConfig()
	cfg.MaxRequests = -1
	if cfg.validate() == nil {
		t.Error("negative request limit accepted")
	}
	cfg = DefaultConfig()
	cfg.Addr = "no-port"
	if cfg.validate() == nil {
		t.Error("address without port accepted")
	}
}

func TestAcceptLoopStopsOnClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- acceptLoop(ln, DefaultConfig()) }()
	ln.Close()
	select {
	case err := <-done:
		if !errors.Is(err, net.ErrClosed) {
			t.Errorf("got %v, want net.ErrClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("accept loop kept running after close")
	}
}
