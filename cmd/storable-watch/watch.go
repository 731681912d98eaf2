package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Vehmloewff/storable/pkg/live"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var (
		url     string
		names   []string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "storable-watch",
		Short: "Stream live cell changes from a storable /watch endpoint",
		Long: `Stream live cell changes from a storable /watch endpoint.

Connects to a live.Server, prints the opening snapshot, then one line
per committed change until interrupted.

Examples:
  storable-watch --url ws://localhost:8080/debug/cells/watch
  storable-watch --names count,title
  storable-watch --timeout 3s`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(url, names, timeout)
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "ws://127.0.0.1:8080/watch", "watch endpoint to dial")
	cmd.Flags().StringSliceVarP(&names, "names", "n", nil, "only print these cells (default: all)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "dial handshake timeout")

	return cmd
}

func runWatch(url string, names []string, timeout time.Duration) error {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		conn.Close()
	}()

	var filter map[string]bool
	if len(names) > 0 {
		filter = make(map[string]bool, len(names))
		for _, name := range names {
			filter[strings.TrimSpace(name)] = true
		}
	}

	for {
		var msg live.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		switch msg.Type {
		case live.MessageSnapshot:
			printSnapshot(msg.Values, filter)

		case live.MessageChange:
			if filter != nil && !filter[msg.Name] {
				continue
			}
			fmt.Printf("change: %s=%s\n", msg.Name, formatValue(msg.Value))
		}
	}
}

func printSnapshot(values map[string]any, filter map[string]bool) {
	names := make([]string, 0, len(values))
	for name := range values {
		if filter != nil && !filter[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+formatValue(values[name]))
	}
	fmt.Printf("snapshot: %s\n", strings.Join(parts, " "))
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", x)
	}
}
