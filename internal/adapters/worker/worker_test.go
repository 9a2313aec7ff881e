package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	Convey("Given a started pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p := NewPool(3, WithName("matrix"), WithQueueCapacity(2))
		p.Start(ctx)
		p.Start(ctx)
		So(p.Size(), ShouldEqual, 3)

		Convey("Run visits every index exactly once", func() {
			seen := make([]int32, 50)
			err := p.Run(ctx, len(seen), func(_ context.Context, i int) {
				atomic.AddInt32(&seen[i], 1)
			})
			So(err, ShouldBeNil)
			for _, n := range seen {
				So(n, ShouldEqual, int32(1))
			}
		})

		Convey("A panicking job does not kill its worker", func() {
			var ran atomic.Int32
			err := p.Run(ctx, 6, func(_ context.Context, i int) {
				ran.Add(1)
				if i == 0 {
					panic("bad cell")
				}
			})
			So(err, ShouldBeNil)
			So(ran.Load(), ShouldEqual, int32(6))
		})

		Convey("Run returns when its context is cancelled", func() {
			rctx, rcancel := context.WithCancel(ctx)
			release := make(chan struct{})
			defer close(release)
			go func() {
				time.Sleep(20 * time.Millisecond)
				rcancel()
			}()
			err := p.Run(rctx, 2, func(context.Context, int) { <-release })
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Shutdown drains and rejects new work", func() {
			var ran atomic.Int32
			for i := 0; i < 4; i++ {
				So(p.Submit(ctx, func(context.Context) { ran.Add(1) }), ShouldBeNil)
			}
			So(p.Shutdown(ctx), ShouldBeNil)
			So(ran.Load(), ShouldEqual, int32(4))
			So(errors.Is(p.Submit(ctx, func(context.Context) {}), ErrStopped), ShouldBeTrue)
			So(p.Shutdown(ctx), ShouldBeNil)
		})
	})

	Convey("Given a pool that was never started", t, func() {
		p := NewPool(0)
		So(p.Size(), ShouldBeGreaterThan, 0)
		So(errors.Is(p.Submit(context.Background(), func(context.Context) {}), ErrNotStarted), ShouldBeTrue)
		So(p.Shutdown(context.Background()), ShouldBeNil)
	})
}
