package dedupe_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pitchrank/pitchrank/internal/domain/dedupe"
	"github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	convey.Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()

		convey.Convey("When a fixture is recorded for the first time", func() {
			d := dedupe.NewInMemoryDeduper()
			seen := d.SeenAndRecord(ctx, 19135001)

			convey.Convey("Then it is newly recorded", func() {
				convey.So(seen, convey.ShouldBeFalse)
				convey.So(d.Size(), convey.ShouldEqual, 1)
			})

			convey.Convey("And a repeat is reported as seen", func() {
				convey.So(d.SeenAndRecord(ctx, 19135001), convey.ShouldBeTrue)
				convey.So(d.Size(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When a fixture is unrecorded", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, 42)
			d.Unrecord(ctx, 42)

			convey.Convey("Then it can be recorded again", func() {
				convey.So(d.Size(), convey.ShouldEqual, 0)
				convey.So(d.SeenAndRecord(ctx, 42), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When unrecording an unknown fixture", func() {
			d := dedupe.NewInMemoryDeduper()
			d.Unrecord(ctx, 99)

			convey.Convey("Then nothing changes", func() {
				convey.So(d.Size(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the bounded deduper overflows", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for id := int64(1); id <= 4; id++ {
				convey.So(d.SeenAndRecord(ctx, id), convey.ShouldBeFalse)
			}

			convey.Convey("Then the oldest fixture is evicted first", func() {
				convey.So(d.Size(), convey.ShouldEqual, 3)
				convey.So(d.SeenAndRecord(ctx, 1), convey.ShouldBeFalse) // evicted
				convey.So(d.SeenAndRecord(ctx, 4), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the deduper is unbounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			for id := int64(0); id < 1000; id++ {
				d.SeenAndRecord(ctx, id)
			}

			convey.Convey("Then nothing is evicted", func() {
				convey.So(d.Size(), convey.ShouldEqual, 1000)
				convey.So(d.SeenAndRecord(ctx, 0), convey.ShouldBeTrue)
				convey.So(d.SeenAndRecord(ctx, 999), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When fixtures arrive concurrently", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(10_000))
			const goroutines = 8
			const perGoroutine = 200

			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						d.SeenAndRecord(ctx, int64(g*perGoroutine+i))
					}
				}(g)
			}
			wg.Wait()

			convey.Convey("Then every fixture is recorded exactly once", func() {
				convey.So(d.Size(), convey.ShouldEqual, goroutines*perGoroutine)
			})
		})
	})
}
