package harness_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algviz/internal/harness"
	"github.com/san-kum/algviz/internal/timer"
)

var _ = Describe("Controller", func() {
	var (
		module *fakeModule
		sched  *fakeScheduler
		delay  *harness.Delay
		ctrl   *harness.Controller
	)

	BeforeEach(func() {
		module = &fakeModule{}
		sched = &fakeScheduler{}
		delay = harness.NewDelay(1.0)
		ctrl = harness.NewController(context.Background(), sched, delay)
	})

	attach := func() {
		Expect(ctrl.Attach(harness.LoadResult{Module: module})).To(Succeed())
	}

	Describe("loading", func() {
		It("resets once and draws the first frame", func() {
			attach()
			Expect(module.resets).To(Equal(1))
			Expect(module.draws).To(Equal(1))
			Expect(ctrl.Loaded()).To(BeTrue())
		})

		It("rejects a second module", func() {
			attach()
			err := ctrl.Attach(harness.LoadResult{Module: &fakeModule{}})
			Expect(err).To(MatchError(harness.ErrAlreadyLoaded))
		})

		It("stays inert after a failed load", func() {
			boom := errors.New("boom")
			Expect(ctrl.Attach(harness.LoadResult{Err: boom})).To(MatchError(boom))
			Expect(ctrl.LoadErr()).To(MatchError(boom))

			Expect(ctrl.Next()).To(Succeed())
			Expect(ctrl.ParamChanged()).To(Succeed())
			ctrl.PausePlay()
			handled, err := ctrl.HandleKey("right")
			Expect(handled).To(BeTrue())
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.delays).To(BeEmpty())
			Expect(ctrl.Delay()).To(Equal(1.0))
		})

		It("treats a nil module without error as a failure", func() {
			Expect(ctrl.Attach(harness.LoadResult{})).To(MatchError(harness.ErrNotLoaded))
			Expect(ctrl.Loaded()).To(BeFalse())
		})
	})

	Describe("stepping", func() {
		BeforeEach(attach)

		It("calls the module once per click", func() {
			clicks := []string{"next", "next", "prev", "next", "prev", "prev", "next"}
			for _, c := range clicks {
				if c == "next" {
					Expect(ctrl.Next()).To(Succeed())
				} else {
					Expect(ctrl.Prev()).To(Succeed())
				}
			}
			Expect(module.nexts).To(Equal(4))
			Expect(module.prevs).To(Equal(3))
			Expect(module.draws).To(Equal(1 + len(clicks)))
		})

		It("skips the explicit draw for self-rendering modules", func() {
			module.selfRendering = true
			Expect(ctrl.Next()).To(Succeed())
			Expect(ctrl.Prev()).To(Succeed())
			Expect(module.draws).To(Equal(1))
		})

		It("wraps module errors", func() {
			module.nextErr = errors.New("out of range")
			err := ctrl.Next()
			Expect(err).To(MatchError(ContainSubstring("next: out of range")))
			Expect(ctrl.Err()).To(Equal(err))
		})
	})

	Describe("parameter changes", func() {
		BeforeEach(attach)

		It("resets exactly once without cancelling when idle", func() {
			Expect(ctrl.ParamChanged()).To(Succeed())
			Expect(module.resets).To(Equal(2))
			Expect(sched.cancels).To(Equal(0))
		})

		It("cancels the pending firing", func() {
			ctrl.PausePlay()
			Expect(ctrl.Pending()).To(BeTrue())

			Expect(ctrl.ParamChanged()).To(Succeed())
			Expect(module.resets).To(Equal(2))
			Expect(sched.cancels).To(Equal(1))
			Expect(ctrl.Pending()).To(BeFalse())
			Expect(sched.fire()).To(BeFalse())
			Expect(module.nexts).To(Equal(0))
		})

		It("leaves the play flag set", func() {
			ctrl.PausePlay()
			Expect(ctrl.ParamChanged()).To(Succeed())
			Expect(ctrl.Playing()).To(BeTrue())

			ctrl.PausePlay()
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.delays).To(HaveLen(1))
		})
	})

	Describe("autoplay", func() {
		BeforeEach(attach)

		It("does not step when paused before the first firing", func() {
			ctrl.PausePlay()
			ctrl.PausePlay()
			Expect(sched.fire()).To(BeFalse())
			Expect(module.nexts).To(Equal(0))
			Expect(ctrl.Pending()).To(BeFalse())
		})

		It("never schedules on speed changes while paused", func() {
			ctrl.Faster()
			ctrl.Slower()
			ctrl.Slower()
			Expect(sched.delays).To(BeEmpty())
			Expect(ctrl.Delay()).To(BeNumerically("~", 1.5, 1e-9))
		})

		It("applies three faster keys multiplicatively", func() {
			delay.SetDelay(3.0)
			for _, k := range []string{"f", "up", "+"} {
				handled, err := ctrl.HandleKey(k)
				Expect(handled).To(BeTrue())
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(ctrl.Delay()).To(BeNumerically("~", 0.888, 0.001))
		})

		It("uses a new delay only from the next firing on", func() {
			ctrl.PausePlay()
			Expect(sched.delays).To(Equal([]time.Duration{time.Second}))

			Expect(sched.fire()).To(BeTrue())
			Expect(module.nexts).To(Equal(1))
			Expect(sched.delays).To(Equal([]time.Duration{time.Second, time.Second}))

			ctrl.Slower()
			Expect(ctrl.Delay()).To(BeNumerically("~", 1.5, 1e-9))
			Expect(sched.delays).To(HaveLen(2))

			Expect(sched.fire()).To(BeTrue())
			Expect(module.nexts).To(Equal(2))
			Expect(sched.delays[2]).To(Equal(1500 * time.Millisecond))
		})

		It("stops silently when a step fails", func() {
			module.nextErr = errors.New("broken")
			ctrl.PausePlay()
			Expect(sched.fire()).To(BeTrue())
			Expect(module.nexts).To(Equal(1))
			Expect(ctrl.Pending()).To(BeFalse())
			Expect(sched.live()).To(Equal(0))
			Expect(ctrl.Playing()).To(BeTrue())
			Expect(ctrl.Err()).To(HaveOccurred())
		})
	})

	Describe("keys", func() {
		BeforeEach(attach)

		DescribeTable("key table",
			func(key string, action harness.Action) {
				got, ok := harness.ActionForKey(key)
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(action))
			},
			Entry("left", "left", harness.ActionPrev),
			Entry("backspace", "backspace", harness.ActionPrev),
			Entry("right", "right", harness.ActionNext),
			Entry("space", " ", harness.ActionNext),
			Entry("up", "up", harness.ActionFaster),
			Entry("f", "f", harness.ActionFaster),
			Entry("plus", "+", harness.ActionFaster),
			Entry("down", "down", harness.ActionSlower),
			Entry("s", "s", harness.ActionSlower),
			Entry("minus", "-", harness.ActionSlower),
			Entry("enter", "enter", harness.ActionPausePlay),
			Entry("p", "p", harness.ActionPausePlay),
		)

		DescribeTable("browser key codes",
			func(code int, action harness.Action) {
				got, ok := harness.ActionForKeyCode(code)
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(action))
			},
			Entry("backspace", 8, harness.ActionPrev),
			Entry("left", 37, harness.ActionPrev),
			Entry("space", 32, harness.ActionNext),
			Entry("right", 39, harness.ActionNext),
			Entry("up", 38, harness.ActionFaster),
			Entry("f", 70, harness.ActionFaster),
			Entry("plus", 187, harness.ActionFaster),
			Entry("down", 40, harness.ActionSlower),
			Entry("s", 83, harness.ActionSlower),
			Entry("minus", 189, harness.ActionSlower),
			Entry("return", 13, harness.ActionPausePlay),
			Entry("p", 80, harness.ActionPausePlay),
		)

		It("leaves unknown keys to the caller", func() {
			handled, err := ctrl.HandleKey("x")
			Expect(handled).To(BeFalse())
			Expect(err).NotTo(HaveOccurred())

			handled, _ = ctrl.HandleKeyCode(65)
			Expect(handled).To(BeFalse())
			Expect(module.nexts + module.prevs).To(Equal(0))
		})

		It("toggles play with enter and p", func() {
			_, _ = ctrl.HandleKey("enter")
			Expect(ctrl.Playing()).To(BeTrue())
			_, _ = ctrl.HandleKeyCode(80)
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.cancels).To(Equal(1))
		})
	})

	Describe("with the timer scheduler", func() {
		It("discards a firing cancelled while queued on the loop", func() {
			clock := timer.NewFakeClock(time.Unix(0, 0))
			loop := timer.NewLoop(8)
			ctrl = harness.NewController(context.Background(),
				harness.TimerScheduler(timer.NewScheduler(clock, loop.Post)), delay)
			attach()

			ctrl.PausePlay()
			clock.Advance(time.Second)
			Expect(loop.Drain()).To(Equal(1))
			Expect(module.nexts).To(Equal(1))

			clock.Advance(time.Second)
			ctrl.PausePlay()
			Expect(loop.Drain()).To(Equal(1))
			Expect(module.nexts).To(Equal(1))
			Expect(clock.Pending()).To(Equal(0))
		})
	})
})

var _ = Describe("Loader", func() {
	It("runs the initializer once and delivers the result", func() {
		var loader harness.Loader
		results := make(chan harness.LoadResult, 2)
		calls := 0
		init := func(context.Context) (harness.Module, error) {
			calls++
			return &fakeModule{}, nil
		}

		Expect(loader.Load(context.Background(), init, func(r harness.LoadResult) { results <- r })).To(BeTrue())
		var res harness.LoadResult
		Eventually(results).Should(Receive(&res))
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Module).NotTo(BeNil())

		Expect(loader.Load(context.Background(), init, func(r harness.LoadResult) { results <- r })).To(BeFalse())
		Consistently(results, 50*time.Millisecond).ShouldNot(Receive())
		Expect(calls).To(Equal(1))
	})

	It("delivers initializer errors", func() {
		var loader harness.Loader
		results := make(chan harness.LoadResult, 1)
		boom := errors.New("no module")
		loader.Load(context.Background(), func(context.Context) (harness.Module, error) {
			return nil, boom
		}, func(r harness.LoadResult) { results <- r })

		var res harness.LoadResult
		Eventually(results).Should(Receive(&res))
		Expect(res.Err).To(MatchError(boom))
	})
})
