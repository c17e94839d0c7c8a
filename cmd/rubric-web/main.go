package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"

	"github.com/aerissecure/rubricconvert/internal/web"
)

func main() {

	fs := flag.NewFlagSet("rubric-web", flag.ExitOnError)
	var (
		_           = fs.String("config", "", "config file (optional), json format.")
		serviceName = fs.String("name", "", "name for this converter service instance")
		serviceID   = fs.String("id", "", "id for this converter service instance, leave blank to auto-generate a unique id")
		serviceHost = fs.String("host", "localhost", "name/address of host for this service")
		servicePort = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
		uploadLimit = fs.String("uploadLimit", "10M", "largest accepted upload, e.g. 512K or 10M")
		workDir     = fs.String("workDir", "", "directory for temporary request files, defaults to the system temp directory")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("RUBRIC_WEB"),
	); err != nil {
		fmt.Printf("\nCannot parse configuration:\n%s\n\n", err)
		os.Exit(1)
	}

	opts := []web.Option{
		web.Name(*serviceName),
		web.ID(*serviceID),
		web.Host(*serviceHost),
		web.Port(*servicePort),
		web.UploadLimit(*uploadLimit),
		web.WorkDir(*workDir),
	}

	srvc, err := web.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create rubric-web service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nrubric-web shutting down")
		srvc.Shutdown()
		fmt.Println("rubric-web closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
