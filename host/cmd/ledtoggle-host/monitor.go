package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"ledtoggle/host/monitor"
	"ledtoggle/host/serial"
	"ledtoggle/protocol"
)

var (
	monDevice string
	monBaud   int
	monFile   string

	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Decode telemetry from a board or a capture file",
		RunE:  runMonitor,
	}
)

func init() {
	monitorCmd.Flags().StringVar(&monDevice, "device", "/dev/ttyUSB0", "Serial device path")
	monitorCmd.Flags().IntVar(&monBaud, "baud", 115200, "Baud rate")
	monitorCmd.Flags().StringVar(&monFile, "file", "", "Read a telemetry capture instead of a device")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var m *monitor.Monitor
	if monFile != "" {
		f, err := os.Open(monFile)
		if err != nil {
			return err
		}
		defer f.Close()
		m = monitor.New(f)
	} else {
		cfg := serial.DefaultConfig(monDevice)
		cfg.Baud = monBaud
		var err error
		m, err = monitor.ConnectWithConfig(cfg)
		if err != nil {
			return err
		}
		defer m.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s...\n", monDevice)
	}

	err := m.Run(ctx, func(ev protocol.Event) {
		fmt.Fprintln(cmd.OutOrStdout(), monitor.FormatEvent(ev))
	})

	st := m.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "dropped=%d lost=%d malformed=%d\n", st.Dropped, st.Lost, st.Malformed)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
