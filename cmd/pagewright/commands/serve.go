package commands

import (
	"net"
	"strconv"

	"git.home.luguber.info/inful/pagewright/internal/devserver"
)

// ServeCmd serves a directory over plain HTTP until interrupted.
type ServeCmd struct {
	Host string `help:"Bind host (default from server.host)"`
	Port int    `help:"Bind port (default from server.port)"`
	Dir  string `short:"d" help:"Directory to serve (default: the output root)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, overrides{host: s.Host, port: s.Port})
	if err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = cfg.Paths().Output
	}

	ctx, cancel := signalContext()
	defer cancel()
	fs := &devserver.FileServer{Dir: dir, Addr: net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))}
	return fs.ListenAndServe(ctx)
}
