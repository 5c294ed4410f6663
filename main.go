package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/raspi"

	"github.com/SSdmk/DE2-FM-Radio/board"
	"github.com/SSdmk/DE2-FM-Radio/config"
	"github.com/SSdmk/DE2-FM-Radio/display"
	"github.com/SSdmk/DE2-FM-Radio/input"
	"github.com/SSdmk/DE2-FM-Radio/logsink"
	"github.com/SSdmk/DE2-FM-Radio/radio"
	"github.com/SSdmk/DE2-FM-Radio/ui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	app := cli.NewApp()
	app.Name = "fmradio"
	app.Usage = "Si4703 FM receiver"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "load configuration from `FILE`",
			EnvVar: config.EnvConfig,
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "log every register sync",
		},
	}
	app.Action = func(c *cli.Context) error {
		return run(c.String("config"), c.Bool("debug"))
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

// logScreen stands in for the LCD when it is disabled.
type logScreen struct {
	last display.Status
}

func (s *logScreen) ShowRadio(st display.Status) error {
	if st != s.last {
		top, bottom := display.RadioLines(st)
		log.Printf("%s | %s\n", top, bottom)
		s.last = st
	}
	return nil
}

func (s *logScreen) ShowPowerOff() error {
	s.last = display.Status{}
	log.Println("Power off")
	return nil
}

func (s *logScreen) ShowFavoriteSaved(freq int) error {
	log.Println(display.FavoriteLine(freq))
	return nil
}

func run(configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Radio.Debug = true
	}

	sink, err := logsink.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()
	log.SetOutput(sink)

	radioConfig, err := cfg.RadioConfig(log.Printf, log.Printf)
	if err != nil {
		return err
	}

	var (
		adaptor     *raspi.Adaptor
		connections []gobot.Connection
		devices     []gobot.Device
		rdio        *radio.Si4703Driver
		screen      ui.Screen = &logScreen{}
	)

	switch cfg.Bus.Transport {
	case config.TransportPeriph:
		b, err := board.Open(cfg.Bus.Name, radio.Address)
		if err != nil {
			return err
		}
		defer func() { _ = b.Close() }()
		log.Printf("Tuner on %s\n", b)

		radioConfig.Bus = radio.NewBlockBus(b, radio.Address, radio.ReadSize)
		radioConfig.Pins = b
		if rdio, err = radio.NewSi4703Driver(nil, radioConfig); err != nil {
			return err
		}
	default:
		adaptor = raspi.NewAdaptor()
		connections = append(connections, adaptor)
		if rdio, err = radio.NewSi4703Driver(adaptor, radioConfig); err != nil {
			return err
		}
	}
	devices = append(devices, rdio)

	if cfg.Display.Enabled {
		lcd, err := display.NewLCD1602Driver(adaptor)
		if err != nil {
			return err
		}
		devices = append(devices, lcd)
		screen = lcd
	}

	controller := ui.NewController(rdio, screen, log.Printf)

	events := make(chan ui.Event, 8)
	refresh := make(chan time.Time, 1)
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	tick := func() {
		select {
		case refresh <- time.Now():
		default:
		}
	}

	work := func() {
		tick()
		ticker := gobot.Every(cfg.Display.Refresh, tick)
		go func() {
			<-done
			ticker.Stop()
		}()
	}

	robot := gobot.NewRobot("FM Receiver",
		connections,
		devices,
		work,
	)

	if err = robot.Start(false); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		controller.Run(events, refresh, done)
	}()

	switch cfg.Input.Source {
	case config.InputGPIO:
		poller := input.NewPoller(adaptor, cfg.Input.Pins, log.Printf)
		if err := poller.Start(); err != nil {
			log.Printf("Buttons disabled: %v\n", err)
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			poller.Run(events, cfg.Input.PollInterval, done)
		}()
	case config.InputKeyboard:
		kb, err := input.OpenKeyboard(cfg.Input.Terminal)
		if err != nil {
			log.Printf("Keyboard disabled: %v\n", err)
			break
		}
		defer func() { _ = kb.Close() }()
		go func() {
			err := kb.Run(events, done)
			if errors.Is(err, input.ErrQuit) {
				select {
				case quit <- os.Interrupt:
				default:
				}
			} else if err != nil {
				log.Printf("Keyboard: %v\n", err)
			}
		}()
	}

	<-quit
	close(done)
	wg.Wait()
	return robot.Stop()
}
