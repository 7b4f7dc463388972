//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/swiftlingo/swiftlingo/internal/app"
)

const version = "v0.3.0"

// notifyConsumer is the standalone front-end: captured text is announced
// through the app's notifier. Embedding applications replace this with their
// own consumer.
type notifyConsumer struct {
	a *app.Application
}

func (c *notifyConsumer) Consume(text string) {
	preview := text
	if r := []rune(preview); len(r) > 120 {
		preview = string(r[:120]) + "..."
	}
	c.a.Notify("Selection captured", preview)
}

func main() {
	consumer := &notifyConsumer{}
	application, err := app.New(version, consumer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swiftlingo: %v\n", err)
		os.Exit(1)
	}
	consumer.a = application

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "swiftlingo: fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	application.Run()
}
