package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Septrum101/gandiDDNS/config"
	"github.com/Septrum101/gandiDDNS/controller"
	"github.com/Septrum101/gandiDDNS/helper"
)

// reportedError has already been logged and only sets the exit code.
type reportedError struct{ error }

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Error(err)
	}
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			log.Error(err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		configFile   string
		printVersion bool
	)

	cmd := &cobra.Command{
		Use:           "gandiddns",
		Short:         "A dynamic IP updater for Gandi domains",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				config.ShowVersion(cmd.OutOrStdout())
				return nil
			}

			c, v, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return configError(cmd, err)
			}
			return run(c, v)
		},
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: config.yml in ., /etc/gandiddns, $HOME/.gandiddns)")
	cmd.Flags().BoolVar(&printVersion, "version", false, "show version")
	config.BindFlags(cmd.PersistentFlags())
	cmd.SetGlobalNormalizationFunc(config.NormalizeFlag)

	cmd.AddCommand(newConfigCmd(&configFile))

	return cmd
}

func newConfigCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := config.Load(cmd.Flags(), *configFile)
			if err != nil {
				return configError(cmd, err)
			}

			masked := *c
			masked.APIKey = helper.MaskSecret(c.APIKey)
			if c.Notify != nil {
				n := *c.Notify
				n.Config = make(map[string]string, len(c.Notify.Config))
				for k, val := range c.Notify.Config {
					if strings.Contains(k, "token") {
						val = helper.MaskSecret(val)
					}
					n.Config[k] = val
				}
				masked.Notify = &n
			}

			out, err := yaml.Marshal(&masked)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func configError(cmd *cobra.Command, err error) error {
	if errors.Is(err, config.ErrMissingConfig) {
		log.Error("Missing config values. You can use .env file or arguments")
		log.Error(err)
		cmd.Usage()
		return reportedError{err}
	}
	return err
}

func run(c *config.Config, v *viper.Viper) error {
	s, err := controller.New(c)
	if err != nil {
		return err
	}

	if c.Interval == 0 {
		defer s.Close()
		if err := s.RunOnce(context.Background()); err != nil {
			return reportedError{err}
		}
		return nil
	}

	// start service
	if err := s.Start(); err != nil {
		s.Close()
		return err
	}

	// hot reload configure
	var mu sync.Mutex
	lastTime := time.Now()
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		if time.Now().After(lastTime.Add(time.Second * 3)) {
			log.Warnln("Config file changed:", e.Name)
			newConf, err := config.Unmarshal(v)
			if err != nil {
				log.Errorf("keep the running config: %v", err)
				lastTime = time.Now()
				return
			}

			// release server resource
			s.Close()
			s = nil

			// create server
			if s, err = controller.New(newConf); err != nil {
				log.Panic(err)
			}
			if err := s.Start(); err != nil {
				log.Panic(err)
			}
		}
		lastTime = time.Now()
	})
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
	}

	// Running backend
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
	<-osSignals

	mu.Lock()
	defer mu.Unlock()
	s.Close()

	return nil
}
