package ui

import "fyne.io/fyne/v2"

// pump hands every value received from ch to handle on the UI goroutine,
// in order, until ch is closed.
func pump[T any](ch <-chan T, handle func(T)) {
	go func() {
		for v := range ch {
			fyne.Do(func() { handle(v) })
		}
	}()
}

// background runs work off the UI goroutine and hands its result to done on it
func background[T any](work func() T, done func(T)) {
	go func() {
		v := work()
		fyne.Do(func() { done(v) })
	}()
}
