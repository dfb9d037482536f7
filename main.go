package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/dukcapil-minsel/suket/config"
	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/model"
	"github.com/dukcapil-minsel/suket/util/crypto"
	"github.com/dukcapil-minsel/suket/web"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("Starting %v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	newServer := func() (*web.Server, error) {
		services, err := web.NewServicesFromConfig()
		if err != nil {
			return nil, err
		}
		server := web.NewServer(services)
		return server, server.Start()
	}

	server, err := newServer()
	if err != nil {
		log.Println("Error starting web server:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := config.LoadEnv(); err != nil {
				logger.Warning("reload env err:", err)
			}
			server, err = newServer()
			if err != nil {
				log.Println("Error restarting web server:", err)
				return
			}
			logger.Info("Web server restarted successfully.")
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			log.Println("Shutting down server.")
			return
		}
	}
}

func hashPassword(password string) {
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		fmt.Println("hash password failed:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func lookupRecords(registerNumber string) {
	services, err := web.NewServicesFromConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	result, err := services.Search.Search(context.Background(), registerNumber, model.Administrator)
	if err != nil {
		fmt.Println("lookup failed:", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REGISTER\tDECIDED\tPLAINTIFF\tDEFENDANT\tSERVED\tSTATUS")
	for _, r := range result.Admin {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.RegisterNumber, r.DecisionDate, r.Plaintiff, r.Defendant, r.ServiceDate, r.Status)
	}
	_ = w.Flush()
}

func generateCertificate(registerNumber string) {
	services, err := web.NewServicesFromConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	path, err := services.Certificates.Generate(context.Background(), registerNumber)
	if err != nil {
		fmt.Println("generate certificate failed:", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Println("load env failed:", err)
	}

	rootCmd := &cobra.Command{
		Use:     config.GetName(),
		Short:   "Case register lookup and certificate panel",
		Version: config.GetVersion(),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Print a bcrypt hash for the users file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			hashPassword(args[0])
		},
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup <register-number>",
		Short: "Print the records matching a register number",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			lookupRecords(args[0])
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate <register-number>",
		Short: "Write the certificate for a register number to the output directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			generateCertificate(args[0])
		},
	}

	rootCmd.AddCommand(runCmd, hashCmd, lookupCmd, generateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
