// Package web hosts the rubric converter behind a small http api:
// upload a rubric file, pick the output format and rubric name, and
// download the converted file.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Service struct {
	// embedded web server to handle conversion requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// largest accepted request body
	uploadLimit string
	// parent of the per-request working directories
	workDir string
}

// requestValidator plugs validator/v10 into echo's Context.Validate.
type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// create a new service instance
func New(options ...Option) (*Service, error) {

	srvc := Service{}

	if err := srvc.setOptions(append(defaultOptions(), options...)...); err != nil {
		return nil, err
	}
	if srvc.servicePort == 0 {
		if err := srvc.setOptions(Port(0)); err != nil {
			return nil, err
		}
	}

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)
	srvc.e.Validator = &requestValidator{v: validator.New()}
	srvc.e.Use(middleware.BodyLimit(srvc.uploadLimit))

	// add pingable method to know we're up
	srvc.e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "OK")
	})
	srvc.e.POST("/convert", srvc.buildConvertHandler())
	srvc.e.POST("/preview", srvc.buildPreviewHandler())
	srvc.e.GET("/example", srvc.buildExampleHandler())

	return &srvc, nil
}

// start the service running
func (s *Service) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

// shut the server down gracefully
func (s *Service) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		s.e.Logger.Error("could not shut down server cleanly: ", err)
	}
}

// ServeHTTP lets the service be mounted or tested without a listener.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Service) PrintConfig() {

	fmt.Println("\n\tRubric Converter Web Service Configuration")
	fmt.Println("\t------------------------------------------")
	fmt.Println()

	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
	fmt.Println("\tupload limit:\t\t", s.uploadLimit)
	fmt.Println("\twork directory:\t\t", s.workDir)
}
