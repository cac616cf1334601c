package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keymidi/config"
	"keymidi/debug"
	"keymidi/keymap"
	"keymidi/midi"
	"keymidi/midi/rtmidi"
	"keymidi/source"
	"keymidi/theme"
	"keymidi/tracker"
	"keymidi/tui"
)

const portScanTimeout = 3 * time.Second

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer debug.Disable()

	keys, err := cfg.KeyMap()
	if err != nil {
		return err
	}

	// no output, no point running
	out, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer out.Close()
	debug.Log("main", "output %q ch=%d", out.Name(), cfg.Output.Channel)

	errs := make(chan error, 16)
	tr := tracker.New(keys, out,
		tracker.WithWorkers(cfg.Dispatch.Workers),
		tracker.WithQueueSize(cfg.Dispatch.QueueSize),
		tracker.WithErrorHandler(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	defer func() {
		if cfg.AllNotesOffOnExit {
			tr.AllNotesOff()
		}
		tr.Close()
	}()

	hub := source.NewHub()
	for _, key := range keys.Keys() {
		hub.OnKeyDown(key, tr.KeyDown)
		hub.OnKeyUp(key, tr.KeyUp)
	}

	var devices <-chan midi.DeviceEvent
	if !cfg.Output.Virtual {
		w := midi.NewWatcher(out)
		devices = w.Events()
		wctx, wcancel := context.WithCancel(ctx)
		watching := make(chan struct{})
		go func() {
			defer close(watching)
			w.Run(wctx)
		}()
		// runs before the deferred out.Close, so no scan can reopen the port
		defer func() {
			wcancel()
			<-watching
		}()
	}

	switch cfg.Input.Source {
	case config.SourceEvdev:
		return runEvdev(ctx, cfg, hub, errs)
	default:
		return runTerminal(ctx, cfg, hub, tr, keys, out.Name(), devices, errs)
	}
}

func openOutput(cfg *config.Config) (*midi.Output, error) {
	if cfg.Output.Virtual {
		return rtmidi.OpenVirtualOutput(cfg.Output.VirtualName, cfg.MIDIChannel(), uint8(cfg.Output.Velocity))
	}

	ports, err := midi.OutPorts(portScanTimeout)
	if err != nil {
		return nil, err
	}
	port, err := midi.FindOutPort(ports, cfg.Output.PortName)
	if err != nil {
		return nil, fmt.Errorf("%w (see 'keymidi ports', or set output.virtual)", err)
	}
	return midi.NewOutput(port, cfg.MIDIChannel(), uint8(cfg.Output.Velocity))
}

func runTerminal(ctx context.Context, cfg *config.Config, hub *source.Hub, tr *tracker.Tracker, keys *keymap.Map, outName string, devices <-chan midi.DeviceEvent, errs <-chan error) error {
	palette, err := theme.Load(cfg.Palette)
	if err != nil {
		return err
	}
	term := source.NewTerminal(hub, time.Duration(cfg.Input.ReleaseAfter))

	m := tui.NewModel(tr, term, keys, theme.New(palette), outName, cfg.PanicKey).WithErrors(errs)
	if devices != nil {
		m = m.WithDevices(devices)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	hub.Stop()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runEvdev(ctx context.Context, cfg *config.Config, hub *source.Hub, errs <-chan error) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-errs:
				fmt.Fprintf(os.Stderr, "keymidi: %v\n", err)
			}
		}
	}()

	// the device stopping early ends the wait as well as a signal does
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dev := &source.Evdev{Path: cfg.Input.Device, Grab: cfg.Input.Grab}
	runErr := make(chan error, 1)
	go func() {
		runErr <- dev.Run(ctx, hub)
		cancel()
	}()

	fmt.Printf("keymidi: reading %s, ctrl+c to stop\n", cfg.Input.Device)
	_ = hub.Wait(ctx)

	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
