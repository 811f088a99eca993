package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/domain"
	"github.com/sellerdash/sellertray/internal/hooks"
	"github.com/sellerdash/sellertray/internal/ports"
)

// FollowOptions holds all parameters for follow behavior.
type FollowOptions struct {
	// Type limits output to one notification type.
	Type string
	// Marketplace limits output to one marketplace.
	Marketplace string
	// Output defaults to stdout.
	Output io.Writer
	// RunHooks fires the notification-received hook point for each event.
	RunHooks bool
}

// FollowUseCase streams live notifications to the terminal until interrupted.
type FollowUseCase struct {
	channel ports.EventChannel
}

// NewFollowUseCase creates a follow use-case.
func NewFollowUseCase(channel ports.EventChannel) *FollowUseCase {
	if channel == nil {
		panic("NewFollowUseCase: channel dependency cannot be nil")
	}
	return &FollowUseCase{channel: channel}
}

// Execute connects the event channel and prints notifications as they arrive,
// until the context is canceled or an interrupt signal is received.
func (u *FollowUseCase) Execute(ctx context.Context, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	colors.Info("Following notifications (Ctrl+C to stop)...")

	events := make(chan domain.Notification, 64)
	u.channel.OnNotification(func(n domain.Notification) {
		select {
		case events <- n:
		default:
			// Slow terminal; drop rather than block the channel reader.
		}
	})
	u.channel.OnConnect(func() {
		colors.Success("Connected")
	})
	u.channel.OnDisconnect(func(reason string) {
		colors.Warning(fmt.Sprintf("Connection lost: %s", reason))
	})
	u.channel.OnReconnect(func(attempt int) {
		colors.Info(fmt.Sprintf("Reconnecting (attempt %d)...", attempt))
	})
	u.channel.OnReconnectFailed(func() {
		colors.Error("Reconnection failed, giving up")
	})

	u.channel.Connect()
	defer u.channel.Disconnect()

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigChan:
			_, _ = fmt.Fprintf(opts.Output, "\nReceived signal %v, stopping...\n", sig)
			return nil
		case n := <-events:
			u.handleEvent(n, opts)
		}
	}
}

func (u *FollowUseCase) handleEvent(n domain.Notification, opts FollowOptions) {
	if opts.Type != "" && opts.Type != "all" && n.Type.String() != opts.Type {
		return
	}
	if opts.Marketplace != "" && n.MarketplaceID != opts.Marketplace {
		return
	}

	printFollowNotification(n, opts.Output)

	if opts.RunHooks {
		_ = hooks.Run(hooks.PointNotificationReceived,
			hooks.NotificationEnv(n.ID, n.Type.String(), n.Status.String(), n.Title, n.ASIN, n.MarketplaceID)...)
	}
}

func printFollowNotification(n domain.Notification, w io.Writer) {
	timeStr := n.CreatedAt.Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf("[%s] [%s] %s", timeStr, n.Type.String(), n.Title)
	color := followColorForType(n.Type)
	reset := colors.Reset
	if color != "" {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", color, msg, reset)
	} else {
		_, _ = fmt.Fprintln(w, msg)
	}
	if n.ASIN != "" {
		_, _ = fmt.Fprintf(w, "  └─ ASIN: %s\n", n.ASIN)
	}
}

func followColorForType(t domain.Type) string {
	switch t {
	case domain.TypeError:
		return colors.Red
	case domain.TypeWarn:
		return colors.Yellow
	case domain.TypeSuccess:
		return colors.Green
	default:
		return ""
	}
}
