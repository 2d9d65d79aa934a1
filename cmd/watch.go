package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/watch"
)

var (
	watchCarrier  string
	watchSchedule string
	watchList     bool
	watchRemove   string
	watchOnce     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [tracking-number...]",
	Short: "Poll parcels on a schedule and report status changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCarrier, "carrier", "c", "", "Carrier code applied to the numbers being added")
	watchCmd.Flags().StringVarP(&watchSchedule, "schedule", "s", "", "Cron expression or @every interval (default from config)")
	watchCmd.Flags().BoolVarP(&watchList, "list", "l", false, "List watched parcels and exit")
	watchCmd.Flags().StringVarP(&watchRemove, "remove", "r", "", "Stop watching a parcel by id or tracking number")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Check every parcel once and exit")
}

func runWatch(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchSchedule != "" {
		cfg.Tracking.WatchSchedule = watchSchedule
	}
	container, err := buildContainer(cfg)
	if err != nil {
		return err
	}
	w := container.Watcher()

	if watchRemove != "" {
		if w.Remove(watchRemove) {
			fmt.Printf("✓ Removed %s\n", watchRemove)
		} else {
			fmt.Printf("%s is not watched\n", watchRemove)
		}
		return nil
	}

	for _, number := range args {
		added, err := w.Add(number, watchCarrier)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Watching %s (id: %s)\n", added.TrackingNumber, added.ID)
	}

	if watchList {
		printWatches(w.List())
		return nil
	}
	if len(w.List()) == 0 {
		fmt.Println("No parcels watched. Pass one or more tracking numbers.")
		return nil
	}

	w.SetOnChange(func(_ context.Context, wt watch.Watch, oldStatus, newStatus string) {
		from := oldStatus
		if from == "" {
			from = "-"
		}
		fmt.Printf("[%s] %s: %s → %s\n", time.Now().Format(time.DateTime), wt.TrackingNumber, from, newStatus)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchOnce {
		w.CheckAll(ctx)
		printWatches(w.List())
		return nil
	}

	fmt.Printf("%s Watching %d parcel(s) on schedule %q (Ctrl+C to stop)\n", logo, len(w.List()), w.Schedule())
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("\nStopped watching.")
	return nil
}

func printWatches(watches []watch.Watch) {
	if len(watches) == 0 {
		fmt.Println("No parcels watched.")
		return
	}
	fmt.Println("Watched parcels:")
	for _, wt := range watches {
		status := wt.LastStatus
		if status == "" {
			status = "(not checked)"
		}
		line := fmt.Sprintf("  %-36s %-20s %s", wt.ID, wt.TrackingNumber, status)
		if wt.LastCheckedAtMs != nil {
			line += "  checked " + time.UnixMilli(*wt.LastCheckedAtMs).Format(time.DateTime)
		}
		if wt.LastError != nil {
			line += "  error: " + *wt.LastError
		}
		fmt.Println(line)
	}
}
