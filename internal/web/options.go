package web

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Option func(*Service) error

// apply all supplied options to the service
// returns any error encountered while applying the options
func (s *Service) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

func defaultOptions() []Option {
	return []Option{
		Name(""),
		ID(""),
		Host("localhost"),
		UploadLimit("10M"),
		WorkDir(""),
	}
}

// the name of this service instance, a short
// random name is generated if none is given
func Name(name string) Option {
	return func(s *Service) error {
		if name == "" {
			name = GenerateName()
		}
		s.serviceName = name
		return nil
	}
}

// the unique id of this service instance, a nuid
// is generated if none is given
func ID(id string) Option {
	return func(s *Service) error {
		if id == "" {
			id = GenerateID()
		}
		s.serviceID = id
		return nil
	}
}

// host address the service listens on
func Host(hostName string) Option {
	return func(s *Service) error {
		if hostName == "" {
			return errors.New("host name cannot be blank")
		}
		s.serviceHost = hostName
		return nil
	}
}

// port the service listens on, 0 picks
// an available port
func Port(port int) Option {
	return func(s *Service) error {
		if port < 0 {
			return errors.Errorf("invalid port %d", port)
		}
		if port == 0 {
			p, err := AvailablePort()
			if err != nil {
				return errors.Wrap(err, "cannot assign service port")
			}
			port = p
		}
		s.servicePort = port
		return nil
	}
}

// largest accepted request body, in echo body-limit
// notation such as 10M or 512K
func UploadLimit(limit string) Option {
	return func(s *Service) error {
		if limit == "" {
			return errors.New("upload limit cannot be blank")
		}
		s.uploadLimit = limit
		return nil
	}
}

// directory under which per-request working
// directories are created, defaults to the
// system temp directory
func WorkDir(dir string) Option {
	return func(s *Service) error {
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "rubric-web")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "cannot create work directory %s", dir)
		}
		s.workDir = dir
		return nil
	}
}
