/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command liso is the server binary: it parses its fixed positional
// arguments, daemonizes, opens the HTTP and HTTPS listeners side by
// side, and hands every accepted socket to its own connection
// goroutine until SIGTERM asks it to drain and exit.
package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/nabbar/liso/certificates"
	"github.com/nabbar/liso/internal/cliargs"
	"github.com/nabbar/liso/internal/connection"
	"github.com/nabbar/liso/internal/daemon"
	"github.com/nabbar/liso/internal/pool"
	"github.com/nabbar/liso/internal/tlsadapter"
	"github.com/nabbar/liso/logger"
)

func main() {
	cfg, e := cliargs.Parse(os.Args[1:])
	if e != nil {
		fmt.Println(cliargs.Usage)
		os.Exit(1)
	}

	if !daemon.IsChild() {
		if e = daemon.Spawn(); e != nil {
			fmt.Fprintln(os.Stderr, e)
			os.Exit(1)
		}
		os.Exit(0)
	}

	lock, e := daemon.AcquireAndWritePID(cfg.LockFile)
	if e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(1)
	}
	defer func() { _ = lock.Release() }()

	if e = daemon.RedirectStdio(); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(1)
	}

	log, e := logger.New(cfg.LogFile)
	if e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	tlsCfg, e := buildTLSConfig(cfg.PrivateKeyFile, cfg.CertificateFile)
	if e != nil {
		log.Errorf("tls configuration: %v", e)
		os.Exit(1)
	}

	p, e := pool.New()
	if e != nil {
		log.Errorf("pool: %v", e)
		os.Exit(1)
	}

	httpLn, e := net.Listen("tcp", ":"+cfg.HTTPPort)
	if e != nil {
		log.Errorf("http listen: %v", e)
		os.Exit(1)
	}

	httpsLn, e := net.Listen("tcp", ":"+cfg.HTTPSPort)
	if e != nil {
		log.Errorf("https listen: %v", e)
		os.Exit(1)
	}

	srv := &server{
		pool:   p,
		log:    log,
		cfg:    connection.Config{DocumentRoot: cfg.WWWFolder, CGIProgram: cfg.CGIProgram, ServerName: "liso"},
		tlsCfg: tlsCfg,
	}

	go srv.acceptLoop(httpLn, "HTTP")
	go srv.acceptLoop(httpsLn, "HTTPS")

	log.Infof("liso listening on :%s (http) and :%s (https)", cfg.HTTPPort, cfg.HTTPSPort)

	waitForShutdown(log)

	_ = httpLn.Close()
	_ = httpsLn.Close()
	p.CloseAll()

	log.Infof("liso stopped")
}

// buildTLSConfig builds the single server-side TLS identity this
// process presents: one certificate pair, no client auth.
func buildTLSConfig(keyFile, crtFile string) (certificates.TLSConfig, error) {
	c := certificates.New()

	if e := c.AddCertificatePairFile(keyFile, crtFile); e != nil {
		return nil, e
	}

	return c, nil
}

// server bundles what every accept loop needs to turn a raw socket
// into a running Connection registered in the pool.
type server struct {
	pool   *pool.Pool
	log    *logger.Logger
	cfg    connection.Config
	tlsCfg certificates.TLSConfig

	nextID int64
}

// acceptLoop accepts connections on ln until it is closed, admitting
// each into the pool and handing it to its own connection goroutine.
// scheme selects whether the socket negotiates TLS before serving
// HTTP/1.1.
func (s *server) acceptLoop(ln net.Listener, scheme string) {
	for {
		raw, e := ln.Accept()
		if e != nil {
			return
		}

		var tlsCfg certificates.TLSConfig
		if scheme == "HTTPS" {
			tlsCfg = s.tlsCfg
		}

		sock := tlsadapter.Wrap(raw, tlsConfigFor(tlsCfg, s.cfg.ServerName))

		id := atomic.AddInt64(&s.nextID, 1)
		c := connection.New(id, sock, scheme, s.cfg, s.log)

		poolID, ok := s.pool.Admit(c)
		if !ok {
			s.log.Errorf("conn %d: pool full, refusing connection from %s", id, raw.RemoteAddr())
			_ = c.Close()
			continue
		}

		go func() {
			c.Serve()
			s.pool.Remove(poolID)
		}()
	}
}

// tlsConfigFor returns the negotiated tls.Config for a scheme, or nil
// for the plaintext HTTP listener; tlsadapter treats a nil *tls.Config
// as "never handshake".
func tlsConfigFor(c certificates.TLSConfig, serverName string) *tls.Config {
	if c == nil {
		return nil
	}

	return c.TLS(serverName)
}

// waitForShutdown blocks until SIGTERM or SIGINT arrives. SIGHUP is
// accepted but otherwise ignored: this server has no config file to
// reload.
func waitForShutdown(log *logger.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	for s := range sig {
		if s == syscall.SIGHUP {
			log.Infof("received SIGHUP, no configuration to reload")
			continue
		}

		log.Infof("received %s, shutting down", s)
		return
	}
}
