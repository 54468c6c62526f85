package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-assistant/internal/config"
)

// Run reads command lines from in and writes replies to out until the user
// quits, in reaches EOF or ctx is cancelled.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)
	go readLines(in, lines, readErr, done)

	fmt.Fprintln(out, a.Welcome())
	for {
		fmt.Fprint(out, a.Prompt())

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompShell)
			return nil

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("%s: %w", config.ErrShellRead, err)
				}
				slog.Info(config.MsgSessionEnd, config.LogKeyComponent, config.CompShell)
				return nil
			}

			reply, quit := a.Reply(ctx, line)
			if reply != "" {
				fmt.Fprintln(out, reply)
			}
			if quit {
				slog.Info(config.MsgSessionEnd, config.LogKeyComponent, config.CompShell)
				return nil
			}
		}
	}
}

// readLines forwards every line of in until EOF or done is closed.
// The final scanner error (nil at EOF) is sent on errc before lines is closed.
func readLines(in io.Reader, lines chan<- string, errc chan<- error, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), config.ShellMaxLineBytes)

	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	errc <- scanner.Err()
}
