package finfo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCallbackChangeToken(t *testing.T) {
	token := NewCallbackChangeToken()

	var calls atomic.Int32
	token.RegisterChangeCallback(func() { calls.Add(1) })
	unregister := token.RegisterChangeCallback(func() { calls.Add(100) })
	unregister()

	if token.HasChanged() {
		t.Fatal("HasChanged() = true before SignalChange")
	}

	token.SignalChange()
	token.SignalChange()

	if !token.HasChanged() {
		t.Error("HasChanged() = false after SignalChange")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("callbacks ran %d, want 1 (unregistered skipped, single signal)", got)
	}
}

func TestWaitForChange(t *testing.T) {
	t.Run("already changed", func(t *testing.T) {
		token := NewCallbackChangeToken()
		token.SignalChange()
		if err := WaitForChange(context.Background(), token); err != nil {
			t.Errorf("WaitForChange() error = %v", err)
		}
	})

	t.Run("signalled later", func(t *testing.T) {
		token := NewCallbackChangeToken()
		go func() {
			time.Sleep(10 * time.Millisecond)
			token.SignalChange()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := WaitForChange(ctx, token); err != nil {
			t.Errorf("WaitForChange() error = %v", err)
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WaitForChange(ctx, NewCallbackChangeToken())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("WaitForChange() error = %v, want context.Canceled", err)
		}
	})
}
