// Package stream delivers input lines over a channel bounded by a context.
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

const (
	// decodeFailureMessage reports an unreadable or non-text input stream.
	decodeFailureMessage = "could not read from standard input"
	// lineChannelCapacity bounds how far the reader may run ahead of the consumer.
	lineChannelCapacity = 64
	// initialScannerBufferSize is the starting line buffer size.
	initialScannerBufferSize = 64 * 1024
	// maximumLineLength caps a single input line.
	maximumLineLength = 1024 * 1024
)

// ErrDecodeFailure marks input that could not be read as UTF-8 text.
var ErrDecodeFailure = errors.New(decodeFailureMessage)

// Consume reads lines from the reader in arrival order and hands each one to
// the handler until end of stream, a handler error, or context cancellation.
//
// Cancellation is treated as clean termination, not an error: whatever the
// handler consumed so far stands. A read failure or non-UTF-8 input aborts
// with ErrDecodeFailure. The reading goroutine may remain blocked on a
// terminal read after cancellation; callers are expected to exit shortly
// after Consume returns.
func Consume(ctx context.Context, reader io.Reader, handler func(line string) error) error {
	lineChannel := make(chan string, lineChannelCapacity)

	consumeContext, cancelConsume := context.WithCancel(ctx)
	defer cancelConsume()

	group, groupContext := errgroup.WithContext(consumeContext)
	group.Go(func() error {
		defer close(lineChannel)
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, initialScannerBufferSize), maximumLineLength)
		for scanner.Scan() {
			lineText := scanner.Text()
			if !utf8.ValidString(lineText) {
				return ErrDecodeFailure
			}
			select {
			case <-groupContext.Done():
				return nil
			case lineChannel <- lineText:
			}
		}
		if scanError := scanner.Err(); scanError != nil {
			return fmt.Errorf("%w: %v", ErrDecodeFailure, scanError)
		}
		return nil
	})

	for {
		select {
		case <-groupContext.Done():
			if ctx.Err() != nil {
				return nil
			}
			return group.Wait()
		case lineText, channelOpen := <-lineChannel:
			if !channelOpen {
				return group.Wait()
			}
			if handlerError := handler(lineText); handlerError != nil {
				return handlerError
			}
		}
	}
}
