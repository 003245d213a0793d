// Corecap — CPU parallelism that respects container quotas
//
// Usage:
//
//	corecap nproc
//	corecap nproc --source
//	corecap workers --workers 50% --watch
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mselway/corecap/internal/config"
	"github.com/mselway/corecap/internal/parallel"
	"github.com/mselway/corecap/internal/sizer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "corecap",
		Short: "corecap — CPU parallelism that respects container quotas",
		Long: "corecap reports how many CPUs the current process can actually use.\n" +
			"Inside a container it reads the cgroup CPU quota; outside it falls\n" +
			"back to the OS-reported CPU count. Use it to size worker pools that\n" +
			"would otherwise over-provision on quota-limited hosts.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false,
		"log each probe's outcome")

	nproc := &cobra.Command{
		Use:   "nproc",
		Short: "Print the effective CPU count for this process",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNproc(&cfg)
		},
	}
	nf := nproc.Flags()
	nf.BoolVar(&cfg.ShowSource, "source", false,
		"also print which signal produced the value")
	nf.BoolVar(&cfg.JSON, "json", false, "emit JSON")

	workers := &cobra.Command{
		Use:   "workers",
		Short: "Print a worker-pool size for the current environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkers(&cfg)
		},
	}
	wf := workers.Flags()
	wf.StringVarP(&cfg.Workers, "workers", "w", envOrDefault("CORECAP_WORKERS", ""),
		`absolute count ("4") or percentage of available CPUs ("50%")`)
	wf.BoolVar(&cfg.InBand, "in-band", false, "run everything in a single worker")
	wf.BoolVar(&cfg.Watch, "watch", false, "watch mode: use half the available CPUs")

	root.AddCommand(nproc, workers)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runNproc(cfg *config.Config) error {
	p := parallel.Resolve()

	if cfg.JSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Count  int    `json:"count"`
			Source string `json:"source"`
		}{p.Count, p.Source.String()})
	}
	if cfg.ShowSource {
		fmt.Printf("%d\t%s\n", p.Count, p.Source)
		return nil
	}
	fmt.Println(p.Count)
	return nil
}

func runWorkers(cfg *config.Config) error {
	p := parallel.Resolve()
	n := sizer.Count(p.Count, sizer.Options{
		Workers: cfg.Workers,
		InBand:  cfg.InBand,
		Watch:   cfg.Watch,
	})
	logrus.WithFields(logrus.Fields{
		"cpus":   p.Count,
		"source": p.Source.String(),
	}).Debug("sizing worker pool")
	fmt.Println(n)
	return nil
}

// envOrDefault returns the value of an env var, or fallback if unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
